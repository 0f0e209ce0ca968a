package ec2

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/instance-scheduler/internal/config"
	"github.com/imamik/instance-scheduler/internal/inventory"
	"github.com/imamik/instance-scheduler/internal/reconcile"
)

// testServer fakes the EC2 query API. Handlers are keyed by the Action form value.
type testServer struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
}

func newTestServer(t *testing.T) *testServer {
	ts := &testServer{handlers: make(map[string]func(w http.ResponseWriter, r *http.Request))}
	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ts.mu.Lock()
		h, ok := ts.handlers[r.Form.Get("Action")]
		ts.mu.Unlock()
		if !ok {
			xmlResponse(w, http.StatusBadRequest, errorBody("InvalidAction", "unexpected action "+r.Form.Get("Action")))
			return
		}
		h(w, r)
	}))
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) handle(action string, h func(w http.ResponseWriter, r *http.Request)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.handlers[action] = h
}

// realClient returns a RealClient talking to the fake. SDK-level retries are
// disabled so only the client's own retry loop is exercised.
func (ts *testServer) realClient(opts ...ClientOption) *RealClient {
	api := ec2.New(ec2.Options{
		Region:       "eu-central-1",
		BaseEndpoint: aws.String(ts.server.URL),
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		Retryer:      aws.NopRetryer{},
	})
	base := []ClientOption{WithTimeouts(&config.Timeouts{
		List:              10 * time.Second,
		Action:            10 * time.Second,
		RetryMaxAttempts:  3,
		RetryInitialDelay: 10 * time.Millisecond,
	})}
	return NewRealClient(api, append(base, opts...)...)
}

func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/xml;charset=UTF-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func errorBody(code, message string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Response><Errors><Error><Code>%s</Code><Message>%s</Message></Error></Errors><RequestID>req-1</RequestID></Response>`, code, message)
}

func instanceXML(id, state string, tags map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<item><instanceId>%s</instanceId><instanceState><code>0</code><name>%s</name></instanceState><tagSet>`, id, state)
	for k, v := range tags {
		fmt.Fprintf(&b, `<item><key>%s</key><value>%s</value></item>`, k, v)
	}
	b.WriteString(`</tagSet></item>`)
	return b.String()
}

func describeBody(nextToken string, instances ...string) string {
	token := ""
	if nextToken != "" {
		token = "<nextToken>" + nextToken + "</nextToken>"
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<DescribeInstancesResponse xmlns="http://ec2.amazonaws.com/doc/2016-11-15/">
<requestId>req-1</requestId>
<reservationSet><item><reservationId>r-1</reservationId><instancesSet>` +
		strings.Join(instances, "") +
		`</instancesSet></item></reservationSet>` + token + `</DescribeInstancesResponse>`
}

func stateChangeBody(action, id, current string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<%[1]sResponse xmlns="http://ec2.amazonaws.com/doc/2016-11-15/">
<requestId>req-1</requestId>
<instancesSet><item><instanceId>%[2]s</instanceId><currentState><code>0</code><name>%[3]s</name></currentState></item></instancesSet>
</%[1]sResponse>`, action, id, current)
}

func TestRealClient_ListInstances(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var filterName, filterValue string
	ts.handle("DescribeInstances", func(w http.ResponseWriter, r *http.Request) {
		filterName = r.Form.Get("Filter.1.Name")
		filterValue = r.Form.Get("Filter.1.Value.1")
		xmlResponse(w, http.StatusOK, describeBody("",
			instanceXML("i-0a", "running", map[string]string{
				"Name":                           "web-1",
				"StartTime-Europe/Paris-SMTWTFS": "n/a|08h00|08h00|08h00|08h00|08h00|n/a",
			}),
			instanceXML("i-0b", "stopped", nil),
			instanceXML("i-0c", "terminated", nil),
		))
	})

	client := ts.realClient(WithFilters(map[string][]string{"tag:team": {"platform"}}))
	instances, err := client.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 3)

	assert.Equal(t, "tag:team", filterName)
	assert.Equal(t, "platform", filterValue)

	assert.Equal(t, "i-0a", instances[0].ID)
	assert.Equal(t, "web-1", instances[0].Name)
	assert.Equal(t, reconcile.ObservedRunning, instances[0].State)
	assert.Equal(t, "n/a|08h00|08h00|08h00|08h00|08h00|n/a", instances[0].Tags["StartTime-Europe/Paris-SMTWTFS"])

	assert.Equal(t, reconcile.ObservedStopped, instances[1].State)
	assert.Empty(t, instances[1].Tags)

	assert.Equal(t, "terminated", instances[2].RawState)
	assert.True(t, reconcile.IsTransitional(instances[2].State))
}

func TestRealClient_ListInstances_Paginates(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var calls atomic.Int32
	ts.handle("DescribeInstances", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Form.Get("NextToken") == "" {
			xmlResponse(w, http.StatusOK, describeBody("page-2", instanceXML("i-1", "running", nil)))
			return
		}
		assert.Equal(t, "page-2", r.Form.Get("NextToken"))
		xmlResponse(w, http.StatusOK, describeBody("", instanceXML("i-2", "stopped", nil)))
	})

	instances, err := ts.realClient().ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "i-1", instances[0].ID)
	assert.Equal(t, "i-2", instances[1].ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRealClient_ListInstances_Error(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.handle("DescribeInstances", func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, http.StatusForbidden, errorBody("UnauthorizedOperation", "not allowed"))
	})

	_, err := ts.realClient().ListInstances(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to describe instances")
}

func TestRealClient_StartStop(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var started, stopped string
	ts.handle("StartInstances", func(w http.ResponseWriter, r *http.Request) {
		started = r.Form.Get("InstanceId.1")
		xmlResponse(w, http.StatusOK, stateChangeBody("StartInstances", started, "pending"))
	})
	ts.handle("StopInstances", func(w http.ResponseWriter, r *http.Request) {
		stopped = r.Form.Get("InstanceId.1")
		xmlResponse(w, http.StatusOK, stateChangeBody("StopInstances", stopped, "stopping"))
	})

	client := ts.realClient()
	require.NoError(t, client.StartInstance(context.Background(), "i-0a"))
	require.NoError(t, client.StopInstance(context.Background(), "i-0b"))
	assert.Equal(t, "i-0a", started)
	assert.Equal(t, "i-0b", stopped)
}

func TestRealClient_PowerAction_RetriesThrottling(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var calls atomic.Int32
	ts.handle("StartInstances", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			xmlResponse(w, http.StatusServiceUnavailable, errorBody("RequestLimitExceeded", "slow down"))
			return
		}
		xmlResponse(w, http.StatusOK, stateChangeBody("StartInstances", "i-0a", "pending"))
	})

	require.NoError(t, ts.realClient().StartInstance(context.Background(), "i-0a"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRealClient_PowerAction_FatalNotFound(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var calls atomic.Int32
	ts.handle("StopInstances", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		xmlResponse(w, http.StatusBadRequest, errorBody("InvalidInstanceID.NotFound", "The instance ID 'i-gone' does not exist"))
	})

	err := ts.realClient().StopInstance(context.Background(), "i-gone")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, inventory.ErrInstanceNotFound)
	assert.Contains(t, err.Error(), "failed to stop instance i-gone")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRealClient_PowerAction_EmptyID(t *testing.T) {
	t.Parallel()
	err := NewRealClient(nil).StartInstance(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instance id is required")
}

func TestRealClient_PowerAction_IncorrectStateNotRetried(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var calls atomic.Int32
	ts.handle("StartInstances", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		xmlResponse(w, http.StatusBadRequest, errorBody("IncorrectInstanceState", "The instance 'i-0a' is not in a state from which it can be started"))
	})

	err := ts.realClient().StartInstance(context.Background(), "i-0a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IncorrectInstanceState")
	assert.Equal(t, int32(1), calls.Load())
}

// fakeAPI counts power calls and fails each one with err.
type fakeAPI struct {
	err        error
	startCalls atomic.Int32
}

func (f *fakeAPI) DescribeInstances(context.Context, *ec2.DescribeInstancesInput, ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return &ec2.DescribeInstancesOutput{}, nil
}

func (f *fakeAPI) StartInstances(context.Context, *ec2.StartInstancesInput, ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	f.startCalls.Add(1)
	return nil, f.err
}

func (f *fakeAPI) StopInstances(context.Context, *ec2.StopInstancesInput, ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	return nil, f.err
}

func TestRealClient_PowerAction_DefaultSendsOnce(t *testing.T) {
	t.Setenv("INSTANCE_SCHEDULER_RETRY_MAX_ATTEMPTS", "")

	api := &fakeAPI{err: &smithy.GenericAPIError{Code: "RequestLimitExceeded"}}
	err := NewRealClient(api).StartInstance(context.Background(), "i-0a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start instance i-0a")
	assert.Equal(t, int32(1), api.startCalls.Load())
}
