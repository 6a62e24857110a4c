// Package thingspeak uploads samples to the ThingSpeak update endpoint as a
// form-encoded POST.
package thingspeak

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/pkg/errors"
)

// TransportFailure is the status code reported when no HTTP response was received.
const TransportFailure = -1

const contentTypeForm = "application/x-www-form-urlencoded"

// Result is the outcome of one upload. StatusCode is TransportFailure when Err
// comes from the transport; otherwise it holds the HTTP status.
type Result struct {
	StatusCode int
	Err        error
}

func (r Result) OK() bool {
	return r.Err == nil
}

type Uploader struct {
	url          string
	apiKey       string
	strictStatus bool
	client       *http.Client
}

func NewUploader(conf entities.HTTPConfig) *Uploader {
	return &Uploader{
		url:          conf.URL,
		apiKey:       conf.APIKey,
		strictStatus: conf.StrictStatus,
		client:       &http.Client{Timeout: conf.Timeout},
	}
}

// WithClient swaps the HTTP client, for tests or custom transports.
func (u *Uploader) WithClient(client *http.Client) *Uploader {
	u.client = client
	return u
}

// EncodeForm builds the update body. url.Values sorts keys, which yields
// api_key, field1 ... field6, the order the channel is configured with.
func EncodeForm(apiKey string, sample entities.Sample) string {
	values := url.Values{}
	values.Set("api_key", apiKey)
	values.Set("field1", formatFloat(sample.Temperature))
	values.Set("field2", strconv.Itoa(sample.Illuminance))
	values.Set("field3", strconv.Itoa(sample.SeatedMinutes))
	values.Set("field4", formatFloat(sample.ScreenHeight))
	values.Set("field5", strconv.Itoa(sample.Posture.Code()))
	values.Set("field6", sample.DeviceID)
	return values.Encode()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// Upload posts one sample. There is no retry: a failed sample is dropped on
// this channel. Any HTTP status counts as delivered unless strict status
// checking is enabled.
func (u *Uploader) Upload(ctx context.Context, sample entities.Sample) Result {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, strings.NewReader(EncodeForm(u.apiKey, sample)))
	if err != nil {
		return Result{StatusCode: TransportFailure, Err: errors.Wrap(err, "build update request")}
	}
	request.Header.Set("Content-Type", contentTypeForm)

	response, err := u.client.Do(request)
	if err != nil {
		return Result{StatusCode: TransportFailure, Err: errors.Wrap(err, "post update")}
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	result := Result{StatusCode: response.StatusCode}
	if u.strictStatus && response.StatusCode >= http.StatusBadRequest {
		result.Err = errors.Errorf("update rejected with status %d", response.StatusCode)
	}
	return result
}
