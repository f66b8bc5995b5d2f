// Package repotest provides an in-memory database and fixtures for tests that
// exercise the repositories.
package repotest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/pkg/pg"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// NewDB opens a fresh in-memory SQLite database with all tables migrated.
// A single connection is kept so every query sees the same database.
func NewDB(t testing.TB) *pg.DB {
	t.Helper()

	gdb, err := pg.Open(sqlite.Open(":memory:"), false)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(repository.Entities()...))

	return pg.New(gdb, gdb)
}

// Tenant is a company with its owner, plan and one api key.
type Tenant struct {
	Plan    *model.Plan
	Owner   *model.User
	Company *model.Company
	ApiKey  *model.ApiKey
}

// SeedPlan inserts an active plan.
func SeedPlan(t testing.TB, db *pg.DB) *model.Plan {
	t.Helper()
	e := &repository.PlanEntity{Title: "basic", Price: 1000, IsActive: true}
	require.NoError(t, db.Write(context.Background()).Create(e).Error)
	return &model.Plan{ID: e.ID, Title: e.Title, Price: e.Price, IsActive: e.IsActive}
}

// SeedUser inserts a user with the given phone and role.
func SeedUser(t testing.TB, db *pg.DB, phone string, role model.Role) *model.User {
	t.Helper()
	u, err := repository.NewUserRepository(db).Create(context.Background(), &model.User{
		UUID:  uuid.NewString(),
		Phone: phone,
		Role:  role,
	})
	require.NoError(t, err)
	return u
}

// SeedTenant creates an owner, a company and an api key. The suffix keeps
// phones and keys unique when several tenants share a database.
func SeedTenant(t testing.TB, db *pg.DB, name string, suffix int) *Tenant {
	t.Helper()
	ctx := context.Background()

	plan := SeedPlan(t, db)
	owner := SeedUser(t, db, fmt.Sprintf("0990000%04d", suffix), model.RoleOwner)

	company, err := repository.NewCompanyRepository(db).Create(ctx, &model.Company{
		Name:   name,
		Owner:  owner.ID,
		PlanID: plan.ID,
	})
	require.NoError(t, err)

	key, err := repository.NewApiKeyRepository(db).Create(ctx, &model.ApiKey{
		Key:       fmt.Sprintf("key-%s-%d", name, suffix),
		Title:     "default",
		CompanyID: company.ID,
	})
	require.NoError(t, err)

	return &Tenant{Plan: plan, Owner: owner, Company: company, ApiKey: key}
}

// SeedMessageType inserts an active message type.
func SeedMessageType(t testing.TB, db *pg.DB) *model.MessageType {
	t.Helper()
	e := &repository.MessageTypeEntity{Title: "notice", Variables: []string{"name"}, IsActive: true}
	require.NoError(t, db.Write(context.Background()).Create(e).Error)
	return &model.MessageType{ID: e.ID, Title: e.Title, Variables: e.Variables, IsActive: e.IsActive}
}

// SeedTemplate inserts a template in the given moderation state.
func SeedTemplate(t testing.TB, db *pg.DB, companyID int64, text string, status model.TemplateStatus, active bool) *model.Template {
	t.Helper()
	mt := SeedMessageType(t, db)
	tpl, err := repository.NewTemplateRepository(db).Create(context.Background(), &model.Template{
		Title:         "tpl",
		Text:          text,
		CompanyID:     companyID,
		MessageTypeID: mt.ID,
		Status:        status,
		IsActive:      active,
	})
	require.NoError(t, err)
	return tpl
}

// CountUsers returns the number of users with the given phone.
func CountUsers(t testing.TB, db *pg.DB, phone string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Read(context.Background()).Model(&repository.UserEntity{}).Where("phone = ?", phone).Count(&n).Error)
	return n
}

// CountMessages returns the number of messages addressed to any user.
func CountMessages(t testing.TB, db *pg.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Read(context.Background()).Model(&repository.MessageEntity{}).Count(&n).Error)
	return n
}
