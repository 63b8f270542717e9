package main

import (
	"log"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Station button line offsets (active low with pull-ups).
const (
	buttonUpOffset   = 5
	buttonDownOffset = 6

	buttonDebounce = 200 * time.Millisecond
)

// buttons holds the requested GPIO lines. Presses are logged only; both
// buttons are reserved for future mode switching.
type buttons struct {
	up   *gpiocdev.Line
	down *gpiocdev.Line
}

func newButtons(chip string) (*buttons, error) {
	up, err := gpiocdev.RequestLine(chip, buttonUpOffset,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithDebounce(buttonDebounce),
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
			log.Printf("Button UP pressed")
		}))
	if err != nil {
		return nil, err
	}

	down, err := gpiocdev.RequestLine(chip, buttonDownOffset,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithDebounce(buttonDebounce),
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
			log.Printf("Button DOWN pressed")
		}))
	if err != nil {
		up.Close()
		return nil, err
	}

	return &buttons{up: up, down: down}, nil
}

func (b *buttons) Close() {
	b.up.Close()
	b.down.Close()
}
