package collections

import "payloadkit/internal/schema"

// All возвращает копии всех объявленных коллекций в порядке регистрации.
func All() []schema.Collection {
	return []schema.Collection{Users.Clone(), Posts.Clone(), Media.Clone()}
}
