// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkboot/core"
)

func TestTimeTicks(t *testing.T) {
	c := qt.New(t)
	ts := core.NewTime(core.TimeConfiguration{FramesPerSecond: 1000, EventPollDelay: 1})
	defer ts.Stop()

	c.Assert(ts.Fps(), qt.Equals, 1000)
	for _, ticker := range []*time.Ticker{ts.FpsTicker(), ts.EventTicker()} {
		select {
		case <-ticker.C:
		case <-time.After(time.Second):
			c.Fatal("ticker did not fire")
		}
	}
}

func TestTimeUnlimited(t *testing.T) {
	c := qt.New(t)
	ts := core.NewTime(core.TimeConfiguration{})
	defer ts.Stop()

	select {
	case <-ts.FpsTicker().C:
	case <-time.After(time.Second):
		c.Fatal("unlimited fps ticker did not fire")
	}
}
