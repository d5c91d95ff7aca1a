package packagemanager

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	"github.com/steelcutops/devflow/devflow/platform"
	"github.com/steelcutops/devflow/logger"
)

type MockCommandManager struct {
	mock.Mock
}

func (m *MockCommandManager) Run(ctx context.Context, inv cm.Invocation) (cm.CommandResult, error) {
	args := m.Called(ctx, inv)
	return args.Get(0).(cm.CommandResult), args.Error(1)
}

func command(line string) interface{} {
	return mock.MatchedBy(func(inv cm.Invocation) bool {
		return inv.String() == line
	})
}

func isInstall(inv cm.Invocation) bool {
	for _, tok := range inv.Tokens() {
		if tok == "install" {
			return true
		}
	}
	return false
}

func newTestInstaller(m cm.CommandManager) (*Installer, *bytes.Buffer) {
	var out bytes.Buffer
	return NewInstaller(m, logger.Discard(), &out), &out
}

func TestInstallerSuccess(t *testing.T) {
	m := new(MockCommandManager)
	m.On("Run", mock.Anything, command("sudo apt-get update")).Return(cm.CommandResult{}, nil).Once()
	m.On("Run", mock.Anything, command("sudo apt-get install cmake clang ninja-build")).Return(cm.CommandResult{}, nil).Once()

	installer, _ := newTestInstaller(m)
	status := installer.Run(context.Background(), platform.Debian, cm.Policy{Sudo: true})

	assert.Equal(t, ExitOK, status)
	m.AssertExpectations(t)
}

func TestInstallerUpdateFailureShortCircuits(t *testing.T) {
	for _, p := range []platform.Platform{platform.Debian, platform.Homebrew} {
		t.Run(p.String(), func(t *testing.T) {
			m := new(MockCommandManager)
			m.On("Run", mock.Anything, mock.MatchedBy(func(inv cm.Invocation) bool { return !isInstall(inv) })).
				Return(cm.CommandResult{ExitCode: 100}, &cm.ExitError{Code: 100})

			installer, _ := newTestInstaller(m)
			status := installer.Run(context.Background(), p, cm.Policy{Sudo: platform.NeedsSudo(p)})

			assert.Equal(t, ExitUpdateFailed, status)
			m.AssertNumberOfCalls(t, "Run", 1)
			for _, call := range m.Calls {
				assert.False(t, isInstall(call.Arguments.Get(1).(cm.Invocation)))
			}
		})
	}
}

func TestInstallerUpdateNonZeroWithoutError(t *testing.T) {
	m := new(MockCommandManager)
	m.On("Run", mock.Anything, command("brew update")).Return(cm.CommandResult{ExitCode: 1}, nil)

	installer, _ := newTestInstaller(m)
	status := installer.Run(context.Background(), platform.Homebrew, cm.Policy{})

	assert.Equal(t, ExitUpdateFailed, status)
	m.AssertNumberOfCalls(t, "Run", 1)
}

func TestInstallerInstallFailure(t *testing.T) {
	m := new(MockCommandManager)
	m.On("Run", mock.Anything, command("brew update")).Return(cm.CommandResult{}, nil)
	m.On("Run", mock.Anything, command("brew install cmake ninja")).Return(cm.CommandResult{ExitCode: 1}, &cm.ExitError{Code: 1})

	installer, _ := newTestInstaller(m)
	status := installer.Run(context.Background(), platform.Homebrew, cm.Policy{})

	assert.Equal(t, ExitInstallFailed, status)
	m.AssertExpectations(t)
}

func TestInstallerDryRunNeverRuns(t *testing.T) {
	for _, p := range []platform.Platform{platform.Debian, platform.Homebrew, platform.Unsupported} {
		t.Run(p.String(), func(t *testing.T) {
			m := new(MockCommandManager)

			installer, out := newTestInstaller(m)
			status := installer.Run(context.Background(), p, cm.Policy{DryRun: true, Sudo: platform.NeedsSudo(p)})

			assert.Equal(t, ExitOK, status)
			m.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)

			pm, ok := ForPlatform(p)
			if !ok {
				assert.Empty(t, out.String())
				return
			}
			policy := cm.Policy{Sudo: platform.NeedsSudo(p)}
			assert.Contains(t, out.String(), "no commands will be executed")
			assert.Contains(t, out.String(), pm.UpdateCommand(policy).String())
			assert.Contains(t, out.String(), pm.InstallCommand(policy).String())
			assert.Less(t,
				strings.Index(out.String(), pm.UpdateCommand(policy).String()),
				strings.Index(out.String(), pm.InstallCommand(policy).String()))
		})
	}
}

func TestInstallerUnsupportedPlatform(t *testing.T) {
	m := new(MockCommandManager)

	installer, _ := newTestInstaller(m)
	status := installer.Run(context.Background(), platform.Unsupported, cm.Policy{Sudo: true})

	assert.Equal(t, ExitOK, status)
	m.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestInstallerList(t *testing.T) {
	installer, out := newTestInstaller(new(MockCommandManager))

	assert.Equal(t, ExitOK, installer.List(platform.Debian))
	assert.Equal(t, "cmake\nclang\nninja-build\n", out.String())

	out.Reset()
	assert.Equal(t, ExitOK, installer.List(platform.Unsupported))
	assert.Empty(t, out.String())
}
