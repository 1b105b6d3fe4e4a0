package http

import (
	"net/http"
	"testing"
	"time"
)

type stubTransport struct{}

func (stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, http.ErrUseLastResponse
}

func TestNewHTTPClient_Defaults(t *testing.T) {
	client := NewHTTPClient()

	if client.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", client.Timeout)
	}

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", client.Transport)
	}
	if transport.MaxIdleConnsPerHost != 10 {
		t.Errorf("expected 10 idle conns per host, got %d", transport.MaxIdleConnsPerHost)
	}
	if transport.TLSClientConfig != nil && transport.TLSClientConfig.InsecureSkipVerify {
		t.Error("TLS verification should be enabled by default")
	}
}

func TestNewHTTPClient_Options(t *testing.T) {
	client := NewHTTPClient(
		WithTimeout(5*time.Second),
		WithMaxIdleConnsPerHost(3),
	)

	if client.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", client.Timeout)
	}
	transport := client.Transport.(*http.Transport)
	if transport.MaxIdleConnsPerHost != 3 {
		t.Errorf("expected 3 idle conns per host, got %d", transport.MaxIdleConnsPerHost)
	}
}

func TestNewHTTPClient_CustomTransport(t *testing.T) {
	client := NewHTTPClient(WithTransport(stubTransport{}))

	if _, ok := client.Transport.(stubTransport); !ok {
		t.Errorf("expected stub transport, got %T", client.Transport)
	}
}

func TestNewHTTPClientWithTimeout(t *testing.T) {
	client := NewHTTPClientWithTimeout(time.Second)
	if client.Timeout != time.Second {
		t.Errorf("expected 1s timeout, got %v", client.Timeout)
	}
}

func TestNewHTTPClient_InsecureSkipVerify(t *testing.T) {
	client := NewHTTPClient(WithInsecureSkipVerify())

	transport := client.Transport.(*http.Transport)
	if transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected TLS verification disabled")
	}
}
