// Package seed populates a development database with fake users,
// relationships, and journals. It is invoked explicitly (SEED_DB=true)
// and never runs in production.
package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"

	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/repository"
)

const (
	userCount          = 20
	journalsPerUser    = 3
	friendsPerUser     = 4
	seedPassword       = "password123"
	likeProbability    = 0.6
	commentProbability = 0.4
)

// Run fills the database through the repositories so seeded data passes
// through the same write paths as real traffic. It is idempotent enough
// for development: duplicate usernames are skipped.
func Run(ctx context.Context, users repository.UserRepository, rels repository.RelationshipRepository, journals repository.JournalRepository) error {
	gofakeit.Seed(42)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	seeded := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := models.User{
			Username:    fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:       gofakeit.Email(),
			Password:    string(hash),
			DisplayName: gofakeit.Name(),
			Avatar:      models.DefaultAvatar,
			Gender:      gofakeit.RandomString([]string{"Male", "Female", "Other"}),
			IsActivated: true,
		}
		exists, err := users.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := users.Register(ctx, &user, models.NewUserRelationship(user.Username)); err != nil {
			return err
		}
		seeded = append(seeded, user)
	}

	for _, user := range seeded {
		for j := 0; j < journalsPerUser; j++ {
			journal := models.Journal{
				Title:      gofakeit.Sentence(4),
				Content:    gofakeit.Paragraph(1, 3, 12, " "),
				Username:   user.Username,
				UserAvatar: user.Avatar,
				Likes:      models.StringList{},
				Comments:   models.CommentList{},
			}
			for _, other := range seeded {
				if other.Username != user.Username && gofakeit.Float64() < likeProbability {
					journal.Likes = append(journal.Likes, other.Username)
				}
				if other.Username != user.Username && gofakeit.Float64() < commentProbability {
					comment := models.NewComment(other.Simple(), gofakeit.Sentence(8))
					journal.Comments = append(journal.Comments, comment)
				}
			}
			if err := journals.Create(ctx, &journal); err != nil {
				return err
			}
		}
	}

	for i, user := range seeded {
		rel, err := rels.GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if rel == nil {
			continue
		}
		for j := 1; j <= friendsPerUser; j++ {
			other := seeded[(i+j)%len(seeded)]
			rel.Friends = append(rel.Friends, other.Simple())
			rel.Following = append(rel.Following, other.Simple())
		}
		if err := rels.Save(ctx, rel); err != nil {
			return err
		}
	}

	middleware.Logger.InfoContext(ctx, "database seeded",
		"users", len(seeded), "journals_per_user", journalsPerUser)
	return nil
}
