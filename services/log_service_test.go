package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/clocklog/models"
	"github.com/blogem/clocklog/repositories/mocks"
)

// SubmitTestSuite is a test suite for the Submit method
type SubmitTestSuite struct {
	suite.Suite
	service     LogService
	mockLogRepo *mocks.MockLogRepository
}

// SetupTest sets up the test suite before each test
func (suite *SubmitTestSuite) SetupTest() {
	suite.mockLogRepo = mocks.NewMockLogRepository(suite.T())
	suite.service = NewLogService(suite.mockLogRepo)
}

// TestSubmit_NumericAge tests that a numeric age is stored as an integer
func (suite *SubmitTestSuite) TestSubmit_NumericAge() {
	suite.mockLogRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(entry *models.LogEntry) bool {
		return entry.Name == "Ada" && entry.Age != nil && *entry.Age == 37
	})).RunAndReturn(func(_ context.Context, entry *models.LogEntry) error {
		entry.ID = 1
		return nil
	})

	// Act
	entry, err := suite.service.Submit(context.Background(), models.FormRecord{Name: "Ada", Age: "37"})

	// Assert
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), entry.ID)
	assert.Equal(suite.T(), int64(37), *entry.Age)
}

// TestSubmit_NonNumericAge tests that a non-numeric age is stored as NULL
func (suite *SubmitTestSuite) TestSubmit_NonNumericAge() {
	suite.mockLogRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(entry *models.LogEntry) bool {
		return entry.Name == "Grace" && entry.Age == nil
	})).Return(nil)

	// Act
	entry, err := suite.service.Submit(context.Background(), models.FormRecord{Name: "Grace", Age: "n/a"})

	// Assert
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), entry.Age)
}

// TestSubmit_RepositoryError tests that persistence failures are returned
func (suite *SubmitTestSuite) TestSubmit_RepositoryError() {
	expectedError := errors.New("database connection failed")
	suite.mockLogRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*models.LogEntry")).Return(expectedError)

	// Act
	entry, err := suite.service.Submit(context.Background(), models.FormRecord{Name: "Ada", Age: "37"})

	// Assert
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, expectedError)
	assert.Contains(suite.T(), err.Error(), "failed to save log entry")
}

// TestSubmitTestSuite runs the Submit test suite
func TestSubmitTestSuite(t *testing.T) {
	suite.Run(t, new(SubmitTestSuite))
}
