package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlive/pkg/device"
)

func TestElement_FireOrder(t *testing.T) {
	t.Parallel()

	el := device.NewElement()
	var calls []string
	el.AddListener(device.KeyDown, func(*device.Event) { calls = append(calls, "first") })
	el.AddListener(device.KeyDown, func(*device.Event) { calls = append(calls, "second") })
	el.AddListener(device.Click, func(*device.Event) { calls = append(calls, "click") })

	el.Fire(device.NewEvent(device.KeyDown, "a"))

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestElement_PreventDefault(t *testing.T) {
	t.Parallel()

	el := device.NewElement()
	el.AddListener(device.KeyDown, func(ev *device.Event) {
		if ev.Key == device.KeyEnter {
			ev.PreventDefault()
		}
	})

	assert.False(t, el.Fire(device.NewEvent(device.KeyDown, device.KeyEnter)))
	assert.True(t, el.Fire(device.NewEvent(device.KeyDown, "x")))
}

func TestElement_RemoveListener(t *testing.T) {
	t.Parallel()

	el := device.NewElement()
	fired := 0
	id := el.AddListener(device.Click, func(*device.Event) { fired++ })
	el.AddListener(device.Click, func(*device.Event) { fired += 10 })

	el.RemoveListener(device.Click, id)
	el.Fire(device.NewEvent(device.Click, ""))

	assert.Equal(t, 10, fired)
	assert.Equal(t, 1, el.ListenerCount(device.Click))
}

func TestIsArrow(t *testing.T) {
	t.Parallel()

	for _, key := range []string{device.KeyArrowLeft, device.KeyArrowRight, device.KeyArrowUp, device.KeyArrowDown} {
		assert.True(t, device.IsArrow(key), key)
	}
	assert.False(t, device.IsArrow(device.KeyEnter))
	assert.False(t, device.IsArrow(""))
}
