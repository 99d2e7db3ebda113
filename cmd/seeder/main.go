// Seeder populates a development database with demo users, conversations
// and campaigns so the UI has something to show.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"

	"github.com/jordanlanch/campaignforge/config"
	"github.com/jordanlanch/campaignforge/pkg/auth"
	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/conversation"
	"github.com/jordanlanch/campaignforge/pkg/database"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
	"github.com/jordanlanch/campaignforge/pkg/user"
)

func main() {
	users := flag.Int("users", 3, "number of demo users to create")
	campaignsPerUser := flag.Int("campaigns", 4, "campaigns per user")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, "text")

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	userRepo := user.NewSQLRepository(db)
	campaignRepo := campaign.NewSQLRepository(db)
	conversationRepo := conversation.NewSQLRepository(db)

	gofakeit.Seed(0)

	for i := 0; i < *users; i++ {
		hash, err := auth.HashPassword("password123")
		if err != nil {
			log.Error("failed to hash password", "error", err)
			os.Exit(1)
		}

		u := &user.User{
			Email:        gofakeit.Email(),
			Name:         gofakeit.Name(),
			PasswordHash: hash,
			BrandVoice:   gofakeit.RandomString([]string{"", "friendly and upbeat", "premium and understated"}),
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Error("failed to create user", "error", err)
			continue
		}
		log.Info("created user", "email", u.Email)

		for j := 0; j < *campaignsPerUser; j++ {
			if err := seedCampaign(ctx, u, campaignRepo, conversationRepo); err != nil {
				log.Error("failed to seed campaign", "error", err)
			}
		}
	}

	log.Info("seeding complete")
}

func seedCampaign(ctx context.Context, u *user.User, campaigns campaign.Repository, conversations conversation.Repository) error {
	product := gofakeit.ProductName()
	goal := fmt.Sprintf("promote %s", product)

	conv := &conversation.Conversation{UserID: u.ID, Title: goal}
	if err := conversations.Create(ctx, conv); err != nil {
		return err
	}
	if err := conversations.AppendMessage(ctx, &conversation.Message{
		ConversationID: conv.ID,
		Role:           conversation.RoleUser,
		Content:        fmt.Sprintf("I want to %s with email and social", goal),
	}); err != nil {
		return err
	}

	in := &intent.CampaignIntent{
		Goal:     goal,
		Channels: []intent.Channel{intent.ChannelEmail, intent.ChannelSocial},
		ContentSpec: intent.ContentSpec{
			Tone:         gofakeit.RandomString([]string{"playful", "professional", "urgent"}),
			KeyMessage:   gofakeit.Sentence(8),
			CallToAction: "Shop now",
		},
		AudienceCriteria: intent.AudienceCriteria{
			Demographics: gofakeit.RandomString([]string{"adults 25-40", "students", "parents"}),
			Location:     gofakeit.City(),
		},
	}

	contents := map[string]content.Content{
		"email": content.EmailContent{
			Subject: gofakeit.Sentence(5),
			Preview: gofakeit.Sentence(7),
			Body:    gofakeit.Paragraph(3, 4, 12, " "),
		},
		"facebook": content.SocialContent{
			Platform:    content.PlatformFacebook,
			Body:        gofakeit.Sentence(20),
			Description: "#" + gofakeit.Word() + " #" + gofakeit.Word(),
		},
		"instagram": content.SocialContent{
			Platform:    content.PlatformInstagram,
			Body:        gofakeit.Sentence(12),
			Description: "#" + gofakeit.Word(),
		},
	}

	camp := campaign.FromIntent(u.ID, conv.ID, in, contents, nil)
	return campaigns.Create(ctx, camp)
}
