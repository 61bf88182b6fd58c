package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/internal/crashtracker"
	"github.com/netkicorp/go-partner-client/internal/monitor"
)

func Test_noArgsAndHelpHaveSameResultAndDoDontPanic(t *testing.T) {
	cmdUtils.ClearTestEnvironment(t)

	cmdArgsTestCases := [][]string{
		{"--help"},
		{},
	}

	for i, cmdArgs := range cmdArgsTestCases {
		// setup
		rootCmd := SetupCLI("x.y.z", "1234567890abcdef")
		rootCmd.SetArgs(cmdArgs)
		var out bytes.Buffer
		rootCmd.SetOut(&out)

		// test
		err := rootCmd.Execute()
		assert.NoErrorf(t, err, "test case %d returned an error", i)

		// assert printed text
		assert.Containsf(t, out.String(), "Use \"netki [command] --help\" for more information about a command.", "test case %d did not print help message as expected", i)
	}
}

func Test_SetupCLI_subcommands(t *testing.T) {
	rootCmd := SetupCLI("x.y.z", "1234567890abcdef")

	subcommands := map[string][]string{}
	for _, cmd := range rootCmd.Commands() {
		for _, sub := range cmd.Commands() {
			subcommands[cmd.Name()] = append(subcommands[cmd.Name()], sub.Name())
		}
	}

	assert.ElementsMatch(t, []string{"list", "create", "update", "delete", "import"}, subcommands["wallet-names"])
	assert.ElementsMatch(t, []string{"list", "create", "delete"}, subcommands["partners"])
	assert.ElementsMatch(t, []string{"list", "status", "dnssec", "create", "delete"}, subcommands["domains"])
	assert.ElementsMatch(t, []string{"products", "get", "balance", "cacert"}, subcommands["certificates"])
	assert.ElementsMatch(t, []string{"generate", "identity"}, subcommands["keys"])
	assert.Equal(t, "x.y.z", rootCmd.Version)
}

func Test_Finalize(t *testing.T) {
	ctx := context.Background()
	defer func() {
		globalOptions = cmdUtils.GlobalOptionsType{}
		crashTrackerClient = nil
		monitorService = nil
	}()

	t.Run("does nothing without an error or a metrics file", func(t *testing.T) {
		globalOptions = cmdUtils.GlobalOptionsType{}
		crashTrackerMock := &crashtracker.MockCrashTrackerClient{}
		crashTrackerClient = crashTrackerMock
		monitorMock := &monitor.MockMonitorService{}
		monitorService = monitorMock

		Finalize(ctx, nil)

		crashTrackerMock.AssertExpectations(t)
		monitorMock.AssertExpectations(t)
	})

	t.Run("logs the error when the crash tracker was not created", func(t *testing.T) {
		globalOptions = cmdUtils.GlobalOptionsType{}
		crashTrackerClient = nil

		getEntries := log.DefaultLogger.StartTest(log.ErrorLevel)
		Finalize(ctx, errors.New("bad flag"))

		entries := getEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, "bad flag", entries[0].Message)
	})

	t.Run("🎉 writes the metrics and reports the error", func(t *testing.T) {
		globalOptions = cmdUtils.GlobalOptionsType{MetricsTextfile: "/tmp/netki.prom"}
		err := errors.New("import failed")

		crashTrackerMock := &crashtracker.MockCrashTrackerClient{}
		crashTrackerMock.On("LogAndReportErrors", ctx, err, "netki command failed").Once()
		crashTrackerMock.On("FlushEvents", crashTrackerFlushTimeout).Return(true).Once()
		crashTrackerClient = crashTrackerMock

		monitorMock := &monitor.MockMonitorService{}
		monitorMock.On("WriteToTextfile", "/tmp/netki.prom").Return(nil).Once()
		monitorService = monitorMock

		Finalize(ctx, err)

		crashTrackerMock.AssertExpectations(t)
		monitorMock.AssertExpectations(t)
	})

	t.Run("logs the metrics write failure", func(t *testing.T) {
		globalOptions = cmdUtils.GlobalOptionsType{MetricsTextfile: "/nonexistent/netki.prom"}
		crashTrackerClient = nil

		monitorMock := &monitor.MockMonitorService{}
		monitorMock.On("WriteToTextfile", "/nonexistent/netki.prom").Return(errors.New("no such directory")).Once()
		monitorService = monitorMock

		getEntries := log.DefaultLogger.StartTest(log.ErrorLevel)
		Finalize(ctx, nil)

		entries := getEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, "Error writing metrics: no such directory", entries[0].Message)
		monitorMock.AssertExpectations(t)
	})
}

