package errors

import (
	stderrs "errors"
	"net/http"
	"strings"
	"testing"

	smithy "github.com/aws/smithy-go"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeNotFound, http.StatusInternalServerError},
		{ErrorCodeProvider, http.StatusInternalServerError},
		{ErrorCodeTimeout, http.StatusInternalServerError},
		{ErrorCodeFatalState, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := Newf(ErrorCodeTimeout, "server %s did not converge", "s-1")
	if CodeOf(e1) != ErrorCodeTimeout {
		t.Fatalf("CodeOf(Newf) = %v", CodeOf(e1))
	}

	src := stderrs.New("root")
	e2 := Wrapf(src, ErrorCodeProvider, "call failed on %s", "s-1")
	if want := "call failed on s-1: root"; e2.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e2.Error(), want)
	}
	if u := stderrs.Unwrap(e2); u == nil || u.Error() != "root" {
		t.Fatalf("Wrapf did not keep orig")
	}
	if Root(e2) != src {
		t.Fatalf("Root did not reach the cause")
	}

	if got, ok := As(e2); !ok || got.Code() != ErrorCodeProvider {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	e3 := WithOp(e2, "provision")
	if got, _ := As(e3); got.Op() != "provision" {
		t.Fatalf("WithOp op = %q", got.Op())
	}
	if got, _ := As(e2); got.Op() != "" {
		t.Fatalf("WithOp mutated the original")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(ErrNotFound) {
		t.Fatalf("IsNotFound(ErrNotFound) = false")
	}
	if !IsNotFound(NotFoundf("no server named %s", "x")) {
		t.Fatalf("IsNotFound(NotFoundf) = false")
	}
	if IsNotFound(Providerf("nope")) {
		t.Fatalf("IsNotFound(provider error) = true")
	}
	if IsNotFound(nil) {
		t.Fatalf("IsNotFound(nil) = true")
	}
}

func TestFromAPI(t *testing.T) {
	api := &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"}
	err := FromAPI(api)
	if !IsCode(err, ErrorCodeProvider) {
		t.Fatalf("FromAPI code = %v, want provider", CodeOf(err))
	}
	e, _ := As(err)
	if e.ProviderCode() != "ThrottlingException" {
		t.Fatalf("ProviderCode = %q", e.ProviderCode())
	}
	// the rendered message leads with the provider message and keeps the cause
	if got, want := e.Error(), "AWS Error: slow down"; !strings.HasPrefix(got, want) {
		t.Fatalf("FromAPI message = %q, want prefix %q", got, want)
	}

	plain := stderrs.New("dial tcp: timeout")
	if !IsCode(FromAPI(plain), ErrorCodeUnknown) {
		t.Fatalf("FromAPI(non-API) code = %v, want unknown", CodeOf(FromAPI(plain)))
	}
	if FromAPI(nil) != nil {
		t.Fatalf("FromAPI(nil) != nil")
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(FromAPI(&smithy.GenericAPIError{Code: "AccessDenied", Message: "no"}))
	if w.Error != "AWS Error: no" || w.ErrorCode != "AccessDenied" {
		t.Fatalf("WireFrom = %+v", w)
	}
	w2 := WireFrom(stderrs.New("boom"))
	if w2.Error != "boom" || w2.ErrorCode != "" {
		t.Fatalf("WireFrom foreign = %+v", w2)
	}
	if w3 := WireFrom(nil); w3 != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w3)
	}
}

func TestHTTPBundle(t *testing.T) {
	status, w := HTTP(JSONErrf("bad json"))
	if status != http.StatusBadRequest || w.Error != "bad json" {
		t.Fatalf("HTTP = %d %+v", status, w)
	}
	status, w = HTTP(nil)
	if status != http.StatusOK || w != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", status, w)
	}
}
