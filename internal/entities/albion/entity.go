package albion

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// VariantKey is the entity id of an item id at one quality, e.g. T5_OFF_SHIELD@1:q3
func VariantKey(itemID string, quality int) string {
	return fmt.Sprintf("%s:q%d", itemID, quality)
}

// IndexEntities maps each entity id to its position in entities. A repeated id
// keeps its first position.
func IndexEntities[T core.Entity](entities []T) map[string]int {
	index := make(map[string]int, len(entities))
	for i, entity := range entities {
		if _, seen := index[entity.GetID()]; seen {
			continue
		}
		index[entity.GetID()] = i
	}
	return index
}
