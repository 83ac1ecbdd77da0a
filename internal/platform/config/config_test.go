package config

import (
	"testing"
	"time"

	"sftpcycle/internal/platform/testkit"
)

func TestPrefixComposition(t *testing.T) {
	t.Setenv("SFTP_SERVER_NAME", "weekly-sftp")
	c := New().Prefix("SFTP_")
	if got := c.MustString("SERVER_NAME"); got != "weekly-sftp" {
		t.Fatalf("MustString = %q", got)
	}
	nested := New().Prefix("SFTP_").Prefix("DNS_")
	t.Setenv("SFTP_DNS_ZONE", "Z123")
	if got := nested.MayString("ZONE", ""); got != "Z123" {
		t.Fatalf("nested prefix = %q", got)
	}
}

func TestMustStringPanicsOnMissing(t *testing.T) {
	c := New().Prefix("SFTP_TEST_")
	testkit.MustPanic(t, func() { c.MustString("ABSENT") })
	t.Setenv("SFTP_TEST_BLANK", "   ")
	testkit.MustPanic(t, func() { c.MustString("BLANK") })
}

func TestRequire(t *testing.T) {
	t.Setenv("REQ_A", "1")
	t.Setenv("REQ_B", "2")
	c := New().Prefix("REQ_")
	testkit.MustNotPanic(t, func() { c.Require("A", "B") })
	testkit.MustPanic(t, func() { c.Require("A", "MISSING") })
}

func TestMayDefaults(t *testing.T) {
	c := New().Prefix("SFTP_MAY_")

	if got := c.MayString("S", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("I", 5); got != 5 {
		t.Fatalf("MayInt default = %d", got)
	}
	if got := c.MayBool("B", true); got != true {
		t.Fatalf("MayBool default = %v", got)
	}
	if got := c.MayDuration("D", 30*time.Second); got != 30*time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}

	t.Setenv("SFTP_MAY_I", "12")
	t.Setenv("SFTP_MAY_B", "false")
	t.Setenv("SFTP_MAY_D", "2m")
	if got := c.MayInt("I", 5); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayBool("B", true); got != false {
		t.Fatalf("MayBool = %v", got)
	}
	if got := c.MayDuration("D", time.Second); got != 2*time.Minute {
		t.Fatalf("MayDuration = %v", got)
	}
}

func TestMayInvalidFallsBack(t *testing.T) {
	c := New().Prefix("SFTP_BAD_")
	t.Setenv("SFTP_BAD_I", "twelve")
	t.Setenv("SFTP_BAD_D", "soon")
	if got := c.MayInt("I", 7); got != 7 {
		t.Fatalf("MayInt invalid = %d, want default", got)
	}
	if got := c.MayDuration("D", 9*time.Second); got != 9*time.Second {
		t.Fatalf("MayDuration invalid = %v, want default", got)
	}
}
