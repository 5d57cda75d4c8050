package controllers

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// missingSlugs reports which of the referenced slugs do not resolve in the
// given collection. Catalog cross-references are stored as slugs, so every
// write must prove its references resolvable instead of leaving lookups to
// fail at read time.
func missingSlugs(db *gorm.DB, model interface{}, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	var found []string
	if err := db.Model(model).Where("slug IN ?", slugs).Pluck("slug", &found).Error; err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(found))
	for _, slug := range found {
		known[slug] = true
	}

	var missing []string
	for _, slug := range slugs {
		if !known[slug] {
			missing = append(missing, slug)
		}
	}
	return missing, nil
}

func unresolvableSlugError(collection string, missing []string) error {
	return fmt.Errorf("unresolvable %s slugs: %s", collection, strings.Join(missing, ", "))
}
