package testmanager

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	fm "github.com/steelcutops/devflow/devflow/filemanager"
	"github.com/steelcutops/devflow/logger"
)

type MockCommandManager struct {
	mock.Mock
}

func (m *MockCommandManager) Run(ctx context.Context, inv cm.Invocation) (cm.CommandResult, error) {
	args := m.Called(ctx, inv)
	return args.Get(0).(cm.CommandResult), args.Error(1)
}

func setupBuild(t *testing.T, exeName string) (root, exe string) {
	t.Helper()
	root = t.TempDir()
	exe = filepath.Join(root, "build", "src", "test", exeName)
	require.NoError(t, os.MkdirAll(filepath.Dir(exe), 0o755))
	require.NoError(t, os.WriteFile(exe, nil, 0o755))
	return root, exe
}

func newTestManager(m cm.CommandManager) (*TestManager, *bytes.Buffer) {
	var out bytes.Buffer
	return &TestManager{
		CommandManager: m,
		FileManager:    fm.NewFileManager(nil),
		Logger:         logger.Discard(),
		Out:            &out,
	}, &out
}

func TestCommand(t *testing.T) {
	o := Options{Root: "/src", BuildDir: "build", Suppressions: "scripts/memcheck.supp", GOOS: "linux"}

	plain := Command("/src/build/LinkCoreTest", o)
	assert.Equal(t, []string{"/src/build/LinkCoreTest"}, plain.Tokens())
	assert.Equal(t, filepath.Join("/src", "build"), plain.Dir())

	o.Valgrind = true
	wrapped := Command("/src/build/LinkCoreTest", o)
	assert.Equal(t, []string{
		"valgrind",
		"--leak-check=full",
		"--show-reachable=yes",
		"--gen-suppressions=all",
		"--error-exitcode=1",
		"--suppressions=" + filepath.Join("/src", "scripts", "memcheck.supp"),
		"/src/build/LinkCoreTest",
	}, wrapped.Tokens())

	o.GOOS = "darwin"
	assert.Equal(t, []string{"/src/build/LinkCoreTest"}, Command("/src/build/LinkCoreTest", o).Tokens())
}

func TestRun(t *testing.T) {
	root, exe := setupBuild(t, "LinkCoreTest")
	m := new(MockCommandManager)
	m.On("Run", mock.Anything, mock.MatchedBy(func(inv cm.Invocation) bool {
		return inv.Name() == exe && inv.Dir() == filepath.Join(root, "build")
	})).Return(cm.CommandResult{}, nil).Once()

	tm, _ := newTestManager(m)
	code := tm.Run(context.Background(), Options{Root: root, BuildDir: "build", Target: "LinkCoreTest", GOOS: "linux"})

	assert.Equal(t, ExitOK, code)
	m.AssertExpectations(t)
}

func TestRunWindowsExtension(t *testing.T) {
	root, exe := setupBuild(t, "LinkCoreTest.exe")
	m := new(MockCommandManager)
	m.On("Run", mock.Anything, mock.MatchedBy(func(inv cm.Invocation) bool {
		return inv.Name() == exe
	})).Return(cm.CommandResult{}, nil).Once()

	tm, _ := newTestManager(m)
	code := tm.Run(context.Background(), Options{Root: root, BuildDir: "build", Target: "LinkCoreTest", GOOS: "windows", Valgrind: true})

	assert.Equal(t, ExitOK, code)
	m.AssertExpectations(t)
}

func TestRunPropagatesExitCode(t *testing.T) {
	root, _ := setupBuild(t, "LinkCoreTest")
	m := new(MockCommandManager)
	m.On("Run", mock.Anything, mock.Anything).Return(cm.CommandResult{ExitCode: 3}, nil)

	tm, _ := newTestManager(m)
	code := tm.Run(context.Background(), Options{Root: root, BuildDir: "build", Target: "LinkCoreTest", GOOS: "linux"})
	assert.Equal(t, 3, code)
}

func TestRunPreconditions(t *testing.T) {
	root, _ := setupBuild(t, "LinkCoreTest")

	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"no build dir", Options{Root: t.TempDir(), BuildDir: "build", Target: "LinkCoreTest"}, ExitBuildDirMissing},
		{"no target", Options{Root: root, BuildDir: "build"}, ExitTargetMissing},
		{"unknown target", Options{Root: root, BuildDir: "build", Target: "LinkDiscoveryTest"}, ExitTargetMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockCommandManager)
			tm, _ := newTestManager(m)
			tt.opts.GOOS = "linux"

			assert.Equal(t, tt.want, tm.Run(context.Background(), tt.opts))
			m.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
		})
	}
}

func TestRunDryRun(t *testing.T) {
	root, exe := setupBuild(t, "LinkCoreTest")
	m := new(MockCommandManager)
	tm, out := newTestManager(m)
	tm.DryRun = true

	code := tm.Run(context.Background(), Options{Root: root, BuildDir: "build", Target: "LinkCoreTest", GOOS: "linux", Valgrind: true})

	assert.Equal(t, ExitOK, code)
	m.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	assert.Contains(t, out.String(), "valgrind")
	assert.Contains(t, out.String(), exe)
}
