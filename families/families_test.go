package families

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustime/campus-deploy/config"
	"github.com/campustime/campus-deploy/functions"
	"github.com/campustime/campus-deploy/roles"
)

func fixtureConfig() config.Config {
	return config.New(map[string]string{
		config.KeyAPIServiceKey:       "test-credential",
		config.KeySlackDeployWebhook:  "https://hooks.example.com/deploy",
		config.KeySlackScraperWebhook: "https://hooks.example.com/scraper",
		config.KeyGitHubToken:         "test-token",
		config.KeyRegion:              "ap-northeast-1",
	})
}

func TestBuild_TimetableScenario(t *testing.T) {
	cat := roles.NewCatalog()

	group, err := Build(cat, Timetable, fixtureConfig())
	require.NoError(t, err)

	// Exactly two roles: read and write.
	require.Len(t, group.Roles, 2)
	assert.Equal(t, "timetable-read-role", group.Roles[0].Name)
	assert.Equal(t, "timetable-write-role", group.Roles[1].Name)

	byName := make(map[string]functions.Descriptor)
	for _, fn := range group.Functions {
		byName[fn.Name] = fn
	}
	require.Len(t, byName, 6)

	assert.Equal(t, "timetable-read-role", byName["timetable-get"].Role.Name)
	for _, name := range []string{"timetable-post", "timetable-patch", "timetable-delete"} {
		assert.Equal(t, "timetable-write-role", byName[name].Role.Name, name)
	}
	assert.Nil(t, byName["timetable-import"].Role)
	assert.Nil(t, byName["timetable-export"].Role)

	wantMemory := map[string]int{
		"timetable-get":    128,
		"timetable-post":   128,
		"timetable-patch":  128,
		"timetable-delete": 128,
		"timetable-import": 256,
		"timetable-export": 512,
	}
	for name, want := range wantMemory {
		assert.Equal(t, want, byName[name].MemoryMB, name)
	}
}

func TestBuild_NoOrphanRoles(t *testing.T) {
	for _, spec := range Platform() {
		t.Run(spec.Family, func(t *testing.T) {
			cat := roles.NewCatalog()
			group, err := Build(cat, spec, fixtureConfig())
			require.NoError(t, err)

			referenced := make(map[string]bool)
			for _, fn := range group.Functions {
				if fn.Role != nil {
					referenced[fn.Role.Name] = true
				}
			}
			// Every produced role is referenced by at least one function.
			assert.Len(t, group.Roles, len(referenced))
			for _, role := range group.Roles {
				assert.True(t, referenced[role.Name], "role %s has no function", role.Name)
			}
		})
	}
}

func TestBuild_IntentDeterminesBinding(t *testing.T) {
	for _, spec := range Platform() {
		cat := roles.NewCatalog()
		group, err := Build(cat, spec, fixtureConfig())
		require.NoError(t, err)

		for _, fn := range group.Functions {
			access, err := Intent(fn.Intent).Access()
			require.NoError(t, err)

			switch access {
			case AccessRead:
				require.NotNil(t, fn.Role, fn.Name)
				assert.False(t, fn.Role.Writable(), fn.Name)
			case AccessWrite:
				require.NotNil(t, fn.Role, fn.Name)
				assert.True(t, fn.Role.Writable(), fn.Name)
			case AccessNone:
				assert.Nil(t, fn.Role, fn.Name)
			}
		}
	}
}

func TestBuild_SingleReadFamily(t *testing.T) {
	cat := roles.NewCatalog()

	group, err := Build(cat, Career, fixtureConfig())
	require.NoError(t, err)

	// One read function, one role, no write role materialized.
	require.Len(t, group.Functions, 1)
	require.Len(t, group.Roles, 1)
	assert.Equal(t, "career-read-role", group.Roles[0].Name)
}

func TestBuild_EmptyFamily(t *testing.T) {
	cat := roles.NewCatalog()

	group, err := Build(cat, Spec{Family: "empty"}, fixtureConfig())
	require.NoError(t, err)
	assert.Empty(t, group.Roles)
	assert.Empty(t, group.Functions)
	assert.Empty(t, cat.Roles())
}

func TestBuild_MissingRequiredEnvironment(t *testing.T) {
	cat := roles.NewCatalog()
	cfg := config.New(map[string]string{}) // no API_SERVICE_KEY

	_, err := Build(cat, CourseReviews, cfg)
	require.ErrorIs(t, err, config.ErrMissingRequiredEnv)
}

func TestBuild_RequiredEnvInjected(t *testing.T) {
	cat := roles.NewCatalog()

	group, err := Build(cat, CourseReviews, fixtureConfig())
	require.NoError(t, err)

	for _, fn := range group.Functions {
		if fn.Name == "course-reviews-post" || fn.Name == "course-reviews-patch" {
			assert.Equal(t, "test-credential", fn.Env[config.KeyAPIServiceKey], fn.Name)
		}
	}
}

func TestBuild_PrivilegeMismatch(t *testing.T) {
	seed := func(t *testing.T) (*roles.Catalog, *roles.AccessRole, *roles.AccessRole) {
		cat := roles.NewCatalog()
		read, err := cat.ReadOnlyDataRole("other")
		require.NoError(t, err)
		write, err := cat.ReadWriteDataRole("other")
		require.NoError(t, err)
		return cat, read, write
	}

	base := FunctionSpec{
		Name: "fn", CodeURI: "lambda/fn", Handler: "fn.handler", Runtime: functions.RuntimePython,
		MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
	}

	t.Run("store-free function bound a role", func(t *testing.T) {
		cat, read, _ := seed(t)
		fn := base
		fn.Intent = IntentExport
		fn.Role = read

		_, err := Build(cat, Spec{Family: "f", Functions: []FunctionSpec{fn}}, fixtureConfig())
		require.ErrorIs(t, err, ErrPrivilegeMismatch)
	})

	t.Run("mutating function bound read role", func(t *testing.T) {
		cat, read, _ := seed(t)
		fn := base
		fn.Intent = IntentCreate
		fn.Role = read

		_, err := Build(cat, Spec{Family: "f", Functions: []FunctionSpec{fn}}, fixtureConfig())
		require.ErrorIs(t, err, ErrPrivilegeMismatch)
	})

	t.Run("retrieval function bound write role", func(t *testing.T) {
		cat, _, write := seed(t)
		fn := base
		fn.Intent = IntentRetrieve
		fn.Role = write

		_, err := Build(cat, Spec{Family: "f", Functions: []FunctionSpec{fn}}, fixtureConfig())
		require.ErrorIs(t, err, ErrPrivilegeMismatch)
	})

	t.Run("consistent explicit binding passes", func(t *testing.T) {
		cat, _, write := seed(t)
		fn := base
		fn.Intent = IntentCreate
		fn.Role = write

		group, err := Build(cat, Spec{Family: "f", Functions: []FunctionSpec{fn}}, fixtureConfig())
		require.NoError(t, err)
		assert.Equal(t, "other-write-role", group.Functions[0].Role.Name)
	})
}

func TestBuild_Deterministic(t *testing.T) {
	build := func() Group {
		cat := roles.NewCatalog()
		group, err := Build(cat, Timetable, fixtureConfig())
		require.NoError(t, err)
		return group
	}

	first := build()
	second := build()

	require.Len(t, second.Functions, len(first.Functions))
	for i := range first.Functions {
		assert.True(t, reflect.DeepEqual(first.Functions[i].Def(), second.Functions[i].Def()),
			"function %s differs between builds", first.Functions[i].Name)
	}
	require.Len(t, second.Roles, len(first.Roles))
	for i := range first.Roles {
		assert.Equal(t, first.Roles[i].Def(), second.Roles[i].Def())
	}
}

func TestIntent_Access_Unknown(t *testing.T) {
	_, err := Intent("launch").Access()
	require.Error(t, err)
}
