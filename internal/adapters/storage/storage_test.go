package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"

	"servicegeek/internal/adapters/rest"
)

func TestSignMany_MapsItemsAndErrors(t *testing.T) {
	t.Parallel()

	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodPost, "https://st.local/storage/v1/object/sign/media",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "Bearer svc" || req.Header.Get("apikey") != "svc" {
				t.Errorf("auth headers = %v", req.Header)
			}
			raw, _ := io.ReadAll(req.Body)
			var body signManyReq
			_ = json.Unmarshal(raw, &body)
			if body.ExpiresIn != 1800 || len(body.Paths) != 2 {
				t.Errorf("body = %+v", body)
			}
			return httpmock.NewStringResponse(http.StatusOK, `[
				{"path":"a/1.jpg","signedURL":"/object/sign/media/a/1.jpg?token=x","error":null},
				{"path":"b/2.jpg","signedURL":null,"error":"Object not found"}
			]`), nil
		})

	c := New(Options{BaseURL: "https://st.local/", ServiceKey: "svc", Transport: mt})
	got, err := c.SignMany(context.Background(), "media", []string{"a/1.jpg", "b/2.jpg"}, 30*time.Minute)
	if err != nil {
		t.Fatalf("SignMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items", len(got))
	}
	if got[0].URL != "https://st.local/storage/v1/object/sign/media/a/1.jpg?token=x" || got[0].Err != "" {
		t.Fatalf("item 0 = %+v", got[0])
	}
	if got[1].URL != "" || got[1].Err != "Object not found" {
		t.Fatalf("item 1 = %+v", got[1])
	}
}

func TestSignMany_EmptyKeysNoCall(t *testing.T) {
	t.Parallel()

	mt := httpmock.NewMockTransport()
	c := New(Options{BaseURL: "https://st.local", Transport: mt})
	got, err := c.SignMany(context.Background(), "media", nil, time.Minute)
	if err != nil || got != nil || mt.GetTotalCallCount() != 0 {
		t.Fatalf("got %v err %v calls %d", got, err, mt.GetTotalCallCount())
	}
}

func TestSignMany_BucketFailure(t *testing.T) {
	t.Parallel()

	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodPost, "https://st.local/storage/v1/object/sign/media",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error":"Bucket not found"}`))

	c := New(Options{BaseURL: "https://st.local", Transport: mt})
	_, err := c.SignMany(context.Background(), "media", []string{"k"}, time.Minute)
	if rest.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}
}

func TestSign_SingleKeyEscapesSegments(t *testing.T) {
	t.Parallel()

	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodPost, "https://st.local/storage/v1/object/sign/profile-pictures/u1/me%20now.png",
		httpmock.NewStringResponder(http.StatusOK, `{"signedURL":"/object/sign/profile-pictures/u1/me%20now.png?token=t"}`))

	c := New(Options{BaseURL: "https://st.local", Transport: mt})
	got, err := c.Sign(context.Background(), "profile-pictures", "u1/me now.png", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if got != "https://st.local/storage/v1/object/sign/profile-pictures/u1/me%20now.png?token=t" {
		t.Fatalf("url = %q", got)
	}
}

func TestAbsolute_KeepsFullURLs(t *testing.T) {
	t.Parallel()

	c := New(Options{BaseURL: "https://st.local"})
	if got := c.absolute("https://cdn.local/x"); got != "https://cdn.local/x" {
		t.Fatalf("got %q", got)
	}
	if got := c.absolute("object/sign/x"); got != "https://st.local/storage/v1/object/sign/x" {
		t.Fatalf("got %q", got)
	}
}
