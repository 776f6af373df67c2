package orgs

import (
	"fmt"
	"strings"

	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/database/models"
	"gorm.io/gorm"
)

// SlugBase lowercases and trims name and joins its words with hyphens.
func SlugBase(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// AllocateSlug picks a slug for name that no organization holds yet. The
// first holder of a base gets it bare; later ones get base-N where N is one
// more than the number of slugs sharing the prefix, bumped past any taken
// value. It reads through tx, so the result is only as fresh as tx's view;
// the unique index on slug settles races.
func AllocateSlug(tx *gorm.DB, name string) (string, error) {
	base := SlugBase(name)
	if base == "" {
		return "", apperr.Field("name", "is required")
	}

	var count int64
	if err := tx.Model(&models.Organization{}).
		Where(`slug LIKE ? ESCAPE '\'`, likeEscaper.Replace(base)+"%").
		Count(&count).Error; err != nil {
		return "", apperr.Storage("count slugs", err)
	}
	if count == 0 {
		return base, nil
	}

	for n := count + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		taken, err := slugTaken(tx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func slugTaken(tx *gorm.DB, slug string) (bool, error) {
	var count int64
	if err := tx.Model(&models.Organization{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, apperr.Storage("check slug", err)
	}
	return count > 0, nil
}
