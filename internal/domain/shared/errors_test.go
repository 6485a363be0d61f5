package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	wrapped := fmt.Errorf("count: %w", ErrCartStoreNotInitialized)

	assert.True(t, errors.Is(wrapped, ErrCartStoreNotInitialized))
	assert.True(t, errors.Is(NewDomainError("VIEW_NOT_FOUND", "other text"), ErrViewNotFound))
	assert.False(t, errors.Is(wrapped, ErrViewNotFound))
	assert.False(t, errors.Is(errors.New("plain"), ErrNotFound))
}

func TestDomainError_Error(t *testing.T) {
	assert.Equal(t, "No category specified", ErrCategoryRequired.Error())
	assert.Equal(t, "CATEGORY_REQUIRED", ErrCategoryRequired.Code)
}
