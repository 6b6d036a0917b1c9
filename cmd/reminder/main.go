// Command reminder emails resume links for abandoned drafts. Run it
// from cron; scheduling is not this binary's concern.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/config"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/database"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/mailer"
)

const batchSize = 200

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	store := intake.NewStore(db, cfg.DraftTTL)
	var m mailer.Mailer = mailer.LogMailer{}

	drafts, err := store.ListOpenOlderThan(ctx, cfg.ReminderAfter, batchSize)
	if err != nil {
		log.Fatalf("list stale drafts failed: %v", err)
	}

	sent := 0
	for _, d := range drafts {
		if d.Contact == nil || d.Contact.Email == "" {
			// Abandoned before step 1 completed; nothing to mail.
			continue
		}

		resumeURL := cfg.PublicBaseURL + "/intake/resume?token=" + d.ResumeToken
		if err := m.SendResumeLink(d.Contact.Email, d.Contact.FullName, resumeURL); err != nil {
			log.Printf("reminder: draft %s: send failed: %v", d.ID, err)
			continue
		}
		if err := store.MarkReminderSent(ctx, d.ID); err != nil {
			log.Printf("reminder: draft %s: mark failed: %v", d.ID, err)
			continue
		}
		sent++
	}

	log.Printf("reminder run completed: candidates=%d sent=%d", len(drafts), sent)
}
