package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect-app/server/internal/apperr"
	"github.com/devconnect-app/server/internal/helpers"
	"github.com/devconnect-app/server/internal/models"
)

type ProfileInput struct {
	Company   string `json:"company"`
	Website   string `json:"website"`
	Location  string `json:"location"`
	Status    string `json:"status" validate:"required"`
	Skills    string `json:"skills" validate:"required"`
	Bio       string `json:"bio"`
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

type ExperienceInput struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// Transactor runs a function inside a single store transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProfileService owns profile upserts, the experience/education lists and the
// account cascade delete. Every mutation operates on the authenticated
// user's own profile.
type ProfileService struct {
	profileRepo models.ProfileRepo
	userRepo    models.UserRepo
	postRepo    models.PostRepo
	tx          Transactor
}

func NewProfileService(profileRepo models.ProfileRepo, userRepo models.UserRepo, postRepo models.PostRepo, tx Transactor) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		postRepo:    postRepo,
		tx:          tx,
	}
}

// splitSkills turns the delimited skills string into the stored list. Tokens
// are trimmed but otherwise kept literally, duplicates and all.
func splitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// Upsert creates the user's profile if absent, else replaces its mutable
// fields in place.
func (ps *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*models.Profile, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, helpers.ValidationError(err)
	}

	fields := models.ProfileFields{
		Company:  input.Company,
		Website:  input.Website,
		Location: input.Location,
		Status:   input.Status,
		Skills:   splitSkills(input.Skills),
		Bio:      input.Bio,
		Social: models.SocialLinks{
			Youtube:   input.Youtube,
			Twitter:   input.Twitter,
			Facebook:  input.Facebook,
			Linkedin:  input.Linkedin,
			Instagram: input.Instagram,
		},
	}

	return ps.profileRepo.UpsertProfile(ctx, userID, fields)
}

func (ps *ProfileService) Me(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return ps.profileRepo.GetProfileByUserID(ctx, userID)
}

// ByUser fetches a profile by its owner's id; the id arrives as a path
// parameter, so a malformed id reads as a missing profile.
func (ps *ProfileService) ByUser(ctx context.Context, userID string) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(helpers.StringTrim(userID))
	if err != nil {
		return nil, apperr.ErrProfileNotFound
	}
	return ps.profileRepo.GetProfileByUserID(ctx, id)
}

func (ps *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return ps.profileRepo.ListProfiles(ctx)
}

// DeleteAccount removes the user's posts, profile and account in one
// transaction so a partial failure cannot leave orphaned documents.
func (ps *ProfileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	return ps.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := ps.postRepo.DeletePostsByUser(ctx, userID); err != nil {
			return err
		}
		if err := ps.profileRepo.DeleteProfileByUserID(ctx, userID); err != nil {
			return err
		}
		return ps.userRepo.DeleteUser(ctx, userID)
	})
}

func (ps *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, input ExperienceInput) (*models.Profile, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, helpers.ValidationError(err)
	}

	entry := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	return ps.profileRepo.AddExperience(ctx, userID, entry)
}

// RemoveExperience deletes the entry with the given id from the user's
// profile. An id that does not resolve to an entry is a no-op and returns
// the profile unchanged.
func (ps *ProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(helpers.StringTrim(entryID))
	if err != nil {
		return ps.profileRepo.GetProfileByUserID(ctx, userID)
	}
	return ps.profileRepo.RemoveExperience(ctx, userID, id)
}

func (ps *ProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, input EducationInput) (*models.Profile, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, helpers.ValidationError(err)
	}

	entry := models.Education{
		ID:           primitive.NewObjectID(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}
	return ps.profileRepo.AddEducation(ctx, userID, entry)
}

func (ps *ProfileService) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(helpers.StringTrim(entryID))
	if err != nil {
		return ps.profileRepo.GetProfileByUserID(ctx, userID)
	}
	return ps.profileRepo.RemoveEducation(ctx, userID, id)
}
