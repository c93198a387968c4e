// Package fetch retrieves documents over HTTP for the parser to consume.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Open issues a GET for url and returns the response body for the caller to
// read and close. A nil client means http.DefaultClient.
func Open(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "text/html, */*;q=0.8")

	log := logrus.WithFields(logrus.Fields{"component": "fetch", "url": url})
	log.Debug("requesting document")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	log.WithField("status", resp.StatusCode).Debug("document received")
	return resp.Body, nil
}

// Load fetches url and returns the whole body as a string.
func Load(ctx context.Context, client *http.Client, url string) (string, error) {
	body, err := Open(ctx, client, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", errors.Wrapf(err, "reading body of %s", url)
	}
	return string(data), nil
}
