package collections

import "payloadkit/internal/schema"

// Users: auth-коллекция, она же admin.user. Своих полей нет, email добавляется неявно.
var Users = schema.Collection{
	Slug: "users",
	Auth: &schema.Auth{UseAPIKey: true},
	Admin: schema.CollectionAdmin{
		UseAsTitle: "email",
	},
	Fields: []schema.Field{},
}
