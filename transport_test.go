package si5351a

import (
	"fmt"
	"testing"
	"time"
)

func TestRetryPolicyPacer(t *testing.T) {

	type TC struct {
		policy RetryPolicy
	}

	tc := []TC{
		{policy: DefaultRetryPolicy},
		{policy: RetryPolicy{MaxAttempts: 5, Delay: 250 * time.Microsecond}},
		{policy: RetryPolicy{MaxAttempts: 1, Delay: 10 * time.Millisecond}},
	}

	for _, c := range tc {

		p := c.policy.Pacer()

		// the pacer is flat: every attempt waits the same delay
		ok := true
		for i := 0; i < c.policy.MaxAttempts; i++ {
			if d := p.Duration(); d != c.policy.Delay {
				ok = false
				break
			}
		}

		d := fmt.Sprintf("Pacer() of %+v paces at %v", c.policy, c.policy.Delay)
		if ok {
			t.Logf("[ ] PASS: %s", d)
		} else {
			t.Errorf("[ ] FAIL: %s | delay drifted", d)
		}
	}
}

func TestBlockMax(t *testing.T) {

	// a full multisynth image plus the spread block must both fit in one
	// transfer
	if BlockMax < 13 {
		t.Errorf("[ ] FAIL: BlockMax == %d | want at least 13", BlockMax)
	} else {
		t.Logf("[ ] PASS: BlockMax == %d", BlockMax)
	}
}
