package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Nahid000001/EshoTryLasttry/internal/db"
	"github.com/Nahid000001/EshoTryLasttry/internal/models"
)

// GetAllCategoryIDs walks the category tree breadth-first and returns the
// root plus every descendant. Already-seen IDs are skipped so a corrupted
// self-referencing tree cannot loop forever.
func GetAllCategoryIDs(rootID uuid.UUID) ([]uuid.UUID, error) {
	result := []uuid.UUID{rootID}
	seen := map[uuid.UUID]bool{rootID: true}

	queue := []uuid.UUID{rootID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var children []models.Category
		err := db.DB.Where("parent_id = ?", current).Find(&children).Error
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			result = append(result, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return result, nil
}

// CategoryFullPath walks the parent chain and renders "Root > Child > Leaf".
// A revisited ID means the chain is cyclic and is reported as an error.
func CategoryFullPath(categoryID uuid.UUID) (string, error) {
	var names []string
	seen := map[uuid.UUID]bool{}

	currentID := &categoryID
	for currentID != nil {
		if seen[*currentID] {
			return "", fmt.Errorf("category tree contains a cycle at %s", currentID)
		}
		seen[*currentID] = true

		var cat models.Category
		if err := db.DB.First(&cat, "id = ?", *currentID).Error; err != nil {
			return "", err
		}
		names = append([]string{cat.Name}, names...)
		currentID = cat.ParentID
	}

	return strings.Join(names, " > "), nil
}
