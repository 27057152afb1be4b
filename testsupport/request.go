package testsupport

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

// httpsClient skips certificate verification: the embedded server runs on a
// self-signed test certificate.
var httpsClient = &http.Client{
	Timeout: requestTimeout,
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	},
}

var httpClient = &http.Client{Timeout: requestTimeout}

// Request issues an HTTP request against the embedded server. The payload is
// JSON-encoded when non-nil. Content-Type and Accept default to
// application/json, and the fake Basic-auth credential is attached unless
// the caller supplied an Authorization header of their own.
func Request(host string, port int, method, path string, payload any, headers map[string]string) (*http.Response, error) {
	url := fmt.Sprintf("http://%s:%d%s", host, port, path)
	return do(httpClient, method, url, payload, headers)
}

// HTTPSRequest is Request over TLS.
func HTTPSRequest(host string, port int, method, path string, payload any, headers map[string]string) (*http.Response, error) {
	url := fmt.Sprintf("https://%s:%d%s", host, port, path)
	return do(httpsClient, method, url, payload, headers)
}

func do(client *http.Client, method, url string, payload any, headers map[string]string) (*http.Response, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Authorization") == "" {
		req.SetBasicAuth(TestUser, TestPassword)
	}

	return client.Do(req)
}
