package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect-app/server/internal/apperr"
	"github.com/devconnect-app/server/internal/models"
)

func newProfileService(profileRepo *MockProfileRepo, userRepo *MockUserRepo, postRepo *MockPostRepo) *ProfileService {
	return NewProfileService(profileRepo, userRepo, postRepo, stubTransactor{})
}

func TestUpsertSplitsSkills(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := newProfileService(profileRepo, new(MockUserRepo), new(MockPostRepo))
	userID := primitive.NewObjectID()

	var gotFields models.ProfileFields
	profileRepo.On("UpsertProfile", mock.Anything, userID, mock.AnythingOfType("models.ProfileFields")).
		Run(func(args mock.Arguments) {
			gotFields = args.Get(2).(models.ProfileFields)
		}).
		Return(&models.Profile{UserID: userID}, nil)

	_, err := svc.Upsert(context.Background(), userID, ProfileInput{
		Status: "Developer",
		Skills: " Go, JavaScript ,Go,",
	})
	require.NoError(t, err)

	// trimmed but kept literally: duplicates and empty tokens survive
	assert.Equal(t, []string{"Go", "JavaScript", "Go", ""}, gotFields.Skills)
	assert.Equal(t, "Developer", gotFields.Status)
}

func TestUpsertValidation(t *testing.T) {
	svc := newProfileService(new(MockProfileRepo), new(MockUserRepo), new(MockPostRepo))

	_, err := svc.Upsert(context.Background(), primitive.NewObjectID(), ProfileInput{})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	fields := make(map[string]string)
	for _, fe := range ve.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "Status is required", fields["status"])
	assert.Equal(t, "Skills is required", fields["skills"])
}

func TestAddExperienceValidation(t *testing.T) {
	svc := newProfileService(new(MockProfileRepo), new(MockUserRepo), new(MockPostRepo))

	_, err := svc.AddExperience(context.Background(), primitive.NewObjectID(), ExperienceInput{})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	fields := make(map[string]string)
	for _, fe := range ve.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "Title is required", fields["title"])
	assert.Equal(t, "Company is required", fields["company"])
	assert.Equal(t, "From date is required", fields["from"])
}

func TestAddExperienceAssignsID(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := newProfileService(profileRepo, new(MockUserRepo), new(MockPostRepo))
	userID := primitive.NewObjectID()

	var entry models.Experience
	profileRepo.On("AddExperience", mock.Anything, userID, mock.AnythingOfType("models.Experience")).
		Run(func(args mock.Arguments) {
			entry = args.Get(2).(models.Experience)
		}).
		Return(&models.Profile{UserID: userID}, nil)

	_, err := svc.AddExperience(context.Background(), userID, ExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    "2020-01-01",
		Current: true,
	})
	require.NoError(t, err)

	assert.False(t, entry.ID.IsZero())
	assert.Equal(t, "Engineer", entry.Title)
	assert.True(t, entry.Current)
}

func TestAddEducationValidation(t *testing.T) {
	svc := newProfileService(new(MockProfileRepo), new(MockUserRepo), new(MockPostRepo))

	_, err := svc.AddEducation(context.Background(), primitive.NewObjectID(), EducationInput{})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	fields := make(map[string]string)
	for _, fe := range ve.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "School is required", fields["school"])
	assert.Equal(t, "Degree is required", fields["degree"])
	assert.Equal(t, "Field of study is required", fields["fieldofstudy"])
	assert.Equal(t, "From date is required", fields["from"])
}

func TestRemoveExperienceUnparsableIDIsNoop(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := newProfileService(profileRepo, new(MockUserRepo), new(MockPostRepo))
	userID := primitive.NewObjectID()

	existing := &models.Profile{UserID: userID, Status: "Developer"}
	profileRepo.On("GetProfileByUserID", mock.Anything, userID).Return(existing, nil)

	profile, err := svc.RemoveExperience(context.Background(), userID, "not-an-object-id")
	require.NoError(t, err)
	assert.Equal(t, existing, profile)

	profileRepo.AssertNotCalled(t, "RemoveExperience", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveExperienceDelegates(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := newProfileService(profileRepo, new(MockUserRepo), new(MockPostRepo))
	userID := primitive.NewObjectID()
	entryID := primitive.NewObjectID()

	profileRepo.On("RemoveExperience", mock.Anything, userID, entryID).
		Return(&models.Profile{UserID: userID}, nil)

	_, err := svc.RemoveExperience(context.Background(), userID, entryID.Hex())
	require.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestDeleteAccountCascades(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	userRepo := new(MockUserRepo)
	postRepo := new(MockPostRepo)
	svc := newProfileService(profileRepo, userRepo, postRepo)
	userID := primitive.NewObjectID()

	postRepo.On("DeletePostsByUser", mock.Anything, userID).Return(nil)
	profileRepo.On("DeleteProfileByUserID", mock.Anything, userID).Return(nil)
	userRepo.On("DeleteUser", mock.Anything, userID).Return(nil)

	err := svc.DeleteAccount(context.Background(), userID)
	require.NoError(t, err)

	postRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestDeleteAccountStopsOnFailure(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	userRepo := new(MockUserRepo)
	postRepo := new(MockPostRepo)
	svc := newProfileService(profileRepo, userRepo, postRepo)
	userID := primitive.NewObjectID()

	storeErr := apperr.Store("delete posts by user", assert.AnError)
	postRepo.On("DeletePostsByUser", mock.Anything, userID).Return(storeErr)

	err := svc.DeleteAccount(context.Background(), userID)
	require.Error(t, err)

	profileRepo.AssertNotCalled(t, "DeleteProfileByUserID", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestByUserUnparsableID(t *testing.T) {
	svc := newProfileService(new(MockProfileRepo), new(MockUserRepo), new(MockPostRepo))

	_, err := svc.ByUser(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperr.ErrProfileNotFound)
}
