package cube

import (
	"fmt"
	"time"
)

// AttributeRemove is the sentinel value in an attribute amendment map that
// deletes the attribute instead of setting it.
const AttributeRemove = "remove"

// HistoryAttribute is the attribute recording processing history.
const HistoryAttribute = "history"

// AmendAttributes adds, updates or removes attributes on the cube in place.
// A value of AttributeRemove deletes the attribute; any other value sets it.
func AmendAttributes(c *Cube, attrs map[string]string) {
	for name, value := range attrs {
		if value == AttributeRemove {
			delete(c.Attributes, name)
			continue
		}
		if c.Attributes == nil {
			c.Attributes = make(map[string]string)
		}
		c.Attributes[name] = value
	}
}

// SetHistory records a timestamped history attribute of the form
// "<timestamp>: <description>", using the current UTC time. When appendTo is
// true and a history attribute exists, the new entry is appended after "; "
// rather than replacing it.
func SetHistory(c *Cube, description string, appendTo bool) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	entry := fmt.Sprintf("%s: %s", timestamp, description)

	if c.Attributes == nil {
		c.Attributes = make(map[string]string)
	}
	if prev, ok := c.Attributes[HistoryAttribute]; ok && appendTo {
		c.Attributes[HistoryAttribute] = prev + "; " + entry
		return
	}
	c.Attributes[HistoryAttribute] = entry
}
