package repository

// Entities lists every table managed by the repositories, in dependency order.
func Entities() []any {
	return []any{
		&PlanEntity{},
		&UserEntity{},
		&CompanyEntity{},
		&ApiKeyEntity{},
		&MessageTypeEntity{},
		&TemplateEntity{},
		&MessageEntity{},
		&TicketEntity{},
	}
}
