package viewer

import (
	"errors"
	"fmt"
)

// ErrImageOutOfRange is returned when a dot outside the image set is selected
var ErrImageOutOfRange = errors.New("image index out of range")

// NextIndex returns the index after i in a ring of n images
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PrevIndex returns the index before i in a ring of n images
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// Carousel tracks the displayed image of a project
type Carousel struct {
	index  int
	length int
}

// NewCarousel starts a carousel over length images at the first image
func NewCarousel(length int) Carousel {
	return Carousel{length: length}
}

func (c *Carousel) Next() { c.index = NextIndex(c.index, c.length) }

func (c *Carousel) Prev() { c.index = PrevIndex(c.index, c.length) }

// Select jumps to image k. The index is left unchanged on error.
func (c *Carousel) Select(k int) error {
	if k < 0 || k >= c.length {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrImageOutOfRange, k, c.length)
	}
	c.index = k
	return nil
}

func (c Carousel) Index() int { return c.index }

func (c Carousel) Len() int { return c.length }

// HasMultiple reports whether navigation controls apply
func (c Carousel) HasMultiple() bool { return c.length > 1 }

// Counter is the 1-based position shown to visitors, e.g. "2 / 5"
func (c Carousel) Counter() string {
	return fmt.Sprintf("%d / %d", c.index+1, c.length)
}
