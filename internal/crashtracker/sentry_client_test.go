package crashtracker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/netkicorp/go-partner-client/pkg/netki"
)

type mockHubSentry struct {
	mock.Mock
	scope *sentry.Scope
}

func (m *mockHubSentry) CaptureException(exception error) *sentry.EventID {
	return m.Called(exception).Get(0).(*sentry.EventID)
}

func (m *mockHubSentry) CaptureMessage(message string) *sentry.EventID {
	return m.Called(message).Get(0).(*sentry.EventID)
}

func (m *mockHubSentry) Clone() *sentry.Hub {
	return m.Called().Get(0).(*sentry.Hub)
}

func (m *mockHubSentry) Flush(timeout time.Duration) bool {
	return m.Called(timeout).Get(0).(bool)
}

func (m *mockHubSentry) Recover(err interface{}) *sentry.EventID {
	return m.Called(err).Get(0).(*sentry.EventID)
}

func (m *mockHubSentry) WithScope(f func(scope *sentry.Scope)) {
	m.Called()
	m.scope = sentry.NewScope()
	f(m.scope)
}

var _ hubSentryInterface = (*mockHubSentry)(nil)

func Test_SentryClient_LogAndReportErrors(t *testing.T) {
	ctx := context.Background()
	mError := fmt.Errorf("mock error")
	sentryID := sentry.EventID("id-1")

	t.Run("LogAndReportErrors with message", func(t *testing.T) {
		mHubSentry := &mockHubSentry{}
		defer mHubSentry.AssertExpectations(t)
		mSentryClient := &sentryClient{hub: mHubSentry}

		mHubSentry.On("CaptureException", fmt.Errorf("%s: %w", "error", mError)).Return(&sentryID).Once()
		mSentryClient.LogAndReportErrors(ctx, mError, "error")
	})

	t.Run("LogAndReportErrors without message", func(t *testing.T) {
		mHubSentry := &mockHubSentry{}
		defer mHubSentry.AssertExpectations(t)
		mSentryClient := &sentryClient{hub: mHubSentry}

		mHubSentry.On("CaptureException", mError).Return(&sentryID).Once()
		mSentryClient.LogAndReportErrors(ctx, mError, "")
		mHubSentry.AssertNotCalled(t, "WithScope")
	})

	t.Run("LogAndReportErrors tags Netki API errors", func(t *testing.T) {
		mHubSentry := &mockHubSentry{}
		defer mHubSentry.AssertExpectations(t)
		mSentryClient := &sentryClient{hub: mHubSentry}

		apiErr := &netki.APIError{
			Kind:       netki.ErrSaveFailed,
			Operation:  "save wallet name",
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid currency",
		}
		mHubSentry.On("WithScope").Once()
		mHubSentry.On("CaptureException", mock.MatchedBy(func(err error) bool {
			return strings.HasPrefix(err.Error(), "saving wallet name: wallet name save failed")
		})).Return(&sentryID).Once()

		mSentryClient.LogAndReportErrors(ctx, apiErr, "saving wallet name")
		require.NotNil(t, mHubSentry.scope)
	})

	t.Run("LogAndReportErrors ignores context.Canceled", func(t *testing.T) {
		mHubSentry := &mockHubSentry{}
		mSentryClient := &sentryClient{hub: mHubSentry}

		buf := new(strings.Builder)
		log.DefaultLogger.SetOutput(buf)

		err := fmt.Errorf("external error that wraps: %w", context.Canceled)
		mSentryClient.LogAndReportErrors(ctx, err, "")
		mHubSentry.AssertNotCalled(t, "CaptureException", mock.Anything)

		require.Contains(t, buf.String(), "context canceled, not reporting error to sentry")
	})
}

func Test_SentryClient_LogAndReportMessages(t *testing.T) {
	mHubSentry := &mockHubSentry{}
	mSentryClient := &sentryClient{hub: mHubSentry}
	sentryID := sentry.EventID("id-1")

	mHubSentry.On("CaptureMessage", "imported 3 wallet names").Return(&sentryID).Once()
	mSentryClient.LogAndReportMessages(context.Background(), "imported 3 wallet names")

	mHubSentry.AssertExpectations(t)
}

func Test_SentryClient_FlushEvents(t *testing.T) {
	mHubSentry := &mockHubSentry{}
	mSentryClient := &sentryClient{hub: mHubSentry}
	waitTimeout := time.Second

	mHubSentry.On("Flush", waitTimeout).Return(true).Once()
	assert.True(t, mSentryClient.FlushEvents(waitTimeout))

	mHubSentry.AssertExpectations(t)
}

func Test_SentryClient_Recover(t *testing.T) {
	mHubSentry := &mockHubSentry{}
	mSentryClient := &sentryClient{hub: mHubSentry}

	mockErr := fmt.Errorf("error test")
	sentryID := sentry.EventID("id-1")

	mHubSentry.On("Recover", mockErr).Return(&sentryID).Once()

	defer mHubSentry.AssertExpectations(t)
	defer mSentryClient.Recover()

	panic(mockErr)
}

func Test_SentryClient_Clone(t *testing.T) {
	mHubSentry := &mockHubSentry{}
	mSentryClient := &sentryClient{hub: mHubSentry}

	hub := sentry.Hub{}
	mHubSentry.On("Clone").Return(&hub).Once()

	cloneClient := mSentryClient.Clone()

	sc := cloneClient.(*sentryClient)
	assert.Equal(t, &hub, sc.hub)

	mHubSentry.AssertExpectations(t)
}
