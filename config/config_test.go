package config

import (
	"testing"
	"time"
)

func TestReadEnv(t *testing.T) {
	t.Setenv("TEST_BOOL", "off")
	t.Setenv("TEST_INT", "12")
	t.Setenv("TEST_BAD_INT", "twelve")
	t.Setenv("TEST_FLOAT", "0.75")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SECONDS", "30")

	b := true
	readEnvBool("TEST_BOOL", &b)
	if b {
		t.Error("readEnvBool: expected false")
	}
	i := 1
	readEnvInt("TEST_INT", &i)
	if i != 12 {
		t.Errorf("readEnvInt = %d", i)
	}
	readEnvInt("TEST_BAD_INT", &i)
	if i != 12 {
		t.Errorf("readEnvInt should keep the old value on bad input, got %d", i)
	}
	f := 0.0
	readEnvFloat("TEST_FLOAT", &f)
	if f != 0.75 {
		t.Errorf("readEnvFloat = %v", f)
	}
	d := time.Duration(0)
	readEnvDuration("TEST_DURATION", &d)
	if d != 90*time.Second {
		t.Errorf("readEnvDuration = %v", d)
	}
	readEnvDuration("TEST_SECONDS", &d)
	if d != 30*time.Second {
		t.Errorf("readEnvDuration(seconds) = %v", d)
	}
	s := "default"
	readEnvString("TEST_UNSET_STRING", &s)
	if s != "default" {
		t.Errorf("readEnvString = %q", s)
	}
}

func TestCorsOrigins(t *testing.T) {
	old := CORS_ORIGINS
	defer func() { CORS_ORIGINS = old }()
	CORS_ORIGINS = " http://a.test, ,http://b.test"
	got := CorsOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("CorsOrigins() = %v", got)
	}
}
