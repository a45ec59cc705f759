package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/models"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%an%", LikePattern(" an "))
	assert.Equal(t, `%50\%\_off\\%`, LikePattern(`50%_off\`))
	assert.Equal(t, "%%", LikePattern(""))
}

func TestGradeValue(t *testing.T) {
	assert.Nil(t, GradeValue(nil))
	got := GradeValue(models.GradePtr("C"))
	require.NotNil(t, got)
	assert.Equal(t, "C", *got)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got := DateOnly(time.Date(2024, 2, 29, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
}
