package nlu

// FindAllEntities returns every entity of the given type, preserving the
// recognizer's ordering. Absence of matches yields an empty result, never
// an error.
func FindAllEntities(entities []Entity, entityType string) []Entity {
	var matched []Entity
	for _, e := range entities {
		if e.Type == entityType {
			matched = append(matched, e)
		}
	}
	return matched
}

// FindEntity returns the first entity of the given type, if any.
func FindEntity(entities []Entity, entityType string) (Entity, bool) {
	for _, e := range FindAllEntities(entities, entityType) {
		return e, true
	}
	return Entity{}, false
}
