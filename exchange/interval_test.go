package exchange

import "testing"

func TestIntervalString(t *testing.T) {
	if actual := OneMinute.String(); actual != "1m" {
		t.Errorf("The one minute interval should render as \"1m\", but instead rendered as %q.", actual)
	}

	if actual := OneHour.String(); actual != "1h" {
		t.Errorf("The one hour interval should render as \"1h\", but instead rendered as %q.", actual)
	}

	if actual := OneMonth.String(); actual != "1M" {
		t.Errorf("The one month interval should render as \"1M\", but instead rendered as %q.", actual)
	}
}

func TestParseIntervalRoundTrip(t *testing.T) {
	for i, name := range intervalNames {
		interval, err := ParseInterval(name)
		if err != nil {
			t.Errorf("The interval %q should have parsed, but instead errored. (Error: %s)", name, err)

			continue
		}

		if interval != Interval(i) {
			t.Errorf("The interval %q parsed to %d, but %d was expected.", name, interval, i)
		}
	}
}

func TestParseIntervalUnknown(t *testing.T) {
	if _, err := ParseInterval("7m"); err == nil {
		t.Errorf("The interval \"7m\" should not have parsed, but no error was returned.")
	}

	if _, err := ParseInterval(""); err == nil {
		t.Errorf("An empty interval should not have parsed, but no error was returned.")
	}
}
