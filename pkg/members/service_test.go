package members

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kashidashi/kashidashi/pkg/config"
	"github.com/kashidashi/kashidashi/pkg/database"
	"github.com/kashidashi/kashidashi/pkg/errcodes"
	"github.com/kashidashi/kashidashi/pkg/migrations"
	"github.com/kashidashi/kashidashi/pkg/models"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// newTestDB goes through database.New so tests run against the same driver
// setup and pragmas as production.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	cfg := config.NewForTest()
	cfg.DatabaseFilePath = filepath.Join(t.TempDir(), "test.db")

	db, err := database.New(cfg)
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestServiceCreateMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member := &models.Member{
		FirstName: "Shevek",
		LastName:  "of Anarres",
		Email:     "shevek@abbenay.edu",
		Active:    true,
	}
	err := svc.CreateMember(ctx, member)
	require.NoError(t, err)

	assert.NotZero(t, member.ID)
	// Registration date defaults to today.
	assert.Equal(t, time.Now().Format(models.DateLayout), member.RegistrationDate)
}

func TestServiceCreateMember_ExplicitRegistrationDate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member := &models.Member{
		FirstName:        "Takver",
		LastName:         "of Anarres",
		Email:            "takver@abbenay.edu",
		RegistrationDate: "2025-06-15",
		Active:           true,
	}
	require.NoError(t, svc.CreateMember(ctx, member))
	assert.Equal(t, "2025-06-15", member.RegistrationDate)
}

func TestServiceCreateMember_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member := &models.Member{FirstName: "Bedap", LastName: "of Anarres", Email: "bedap@abbenay.edu", Active: true}
	require.NoError(t, svc.CreateMember(ctx, member))

	dupe := &models.Member{FirstName: "Other", LastName: "Person", Email: "bedap@abbenay.edu", Active: true}
	err := svc.CreateMember(ctx, dupe)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestServiceRetrieveMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member := &models.Member{FirstName: "Rulag", LastName: "of Anarres", Email: "rulag@abbenay.edu", Active: true}
	require.NoError(t, svc.CreateMember(ctx, member))

	byID, err := svc.RetrieveMember(ctx, RetrieveMemberOptions{ID: &member.ID})
	require.NoError(t, err)
	assert.Equal(t, member.Email, byID.Email)

	byEmail, err := svc.RetrieveMember(ctx, RetrieveMemberOptions{Email: &member.Email})
	require.NoError(t, err)
	assert.Equal(t, member.ID, byEmail.ID)
}

func TestServiceRetrieveMember_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.RetrieveMember(ctx, RetrieveMemberOptions{ID: pointerutil.Int(999)})
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
	assert.Equal(t, "Member not found.", codeErr.Message)
}

func TestServiceListMembers_NameFilter(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	laia := &models.Member{FirstName: "Laia", LastName: "Odo", Email: "laia@nio-esseia.gov", Active: true}
	require.NoError(t, svc.CreateMember(ctx, laia))
	taviri := &models.Member{FirstName: "Taviri", LastName: "Asieo", Email: "taviri@nio-esseia.gov", Active: true}
	require.NoError(t, svc.CreateMember(ctx, taviri))

	// Matches against first name.
	found, err := svc.ListMembers(ctx, ListMembersOptions{Name: pointerutil.String("Laia")})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, laia.ID, found[0].ID)

	// Matches against last name too.
	found, err = svc.ListMembers(ctx, ListMembersOptions{Name: pointerutil.String("Asieo")})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, taviri.ID, found[0].ID)
}

func TestServiceListMembers_ActiveFilter(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	active := &models.Member{FirstName: "Sadik", LastName: "of Anarres", Email: "sadik@abbenay.edu", Active: true}
	require.NoError(t, svc.CreateMember(ctx, active))
	inactive := &models.Member{FirstName: "Desar", LastName: "of Anarres", Email: "desar@abbenay.edu", Active: false}
	require.NoError(t, svc.CreateMember(ctx, inactive))

	isActive := true
	found, total, err := svc.ListMembersWithTotal(ctx, ListMembersOptions{Active: &isActive})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, found, 1)
	assert.Equal(t, active.ID, found[0].ID)
}

func TestServiceUpdateMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member := &models.Member{FirstName: "Vea", LastName: "Oiie", Email: "vea@nio-esseia.gov", Active: true}
	require.NoError(t, svc.CreateMember(ctx, member))

	member.Active = false
	member.Phone = pointerutil.String("555-0199")
	err := svc.UpdateMember(ctx, member, UpdateMemberOptions{Columns: []string{"active", "phone"}})
	require.NoError(t, err)

	stored, err := svc.RetrieveMember(ctx, RetrieveMemberOptions{ID: &member.ID})
	require.NoError(t, err)
	assert.False(t, stored.Active)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "555-0199", *stored.Phone)
	assert.Equal(t, "Vea", stored.FirstName)
}

func TestServiceDeleteMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	member := &models.Member{FirstName: "Atro", LastName: "of Urras", Email: "atro@ieu-eun.edu", Active: true}
	require.NoError(t, svc.CreateMember(ctx, member))

	deleted, err := svc.DeleteMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, deleted.ID)

	_, err = svc.RetrieveMember(ctx, RetrieveMemberOptions{ID: &member.ID})
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}

func TestMemberFullName(t *testing.T) {
	t.Parallel()

	member := &models.Member{FirstName: "Laia", LastName: "Odo"}
	assert.Equal(t, "Laia Odo", member.FullName())
}
