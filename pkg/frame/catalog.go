package frame

import "slices"

type catalogEntry struct {
	name string
	slot int
}

// catalog maps column names to storage slots. The map and the ordered list
// always hold the same set of (name, slot) pairs; the list keeps creation
// order. Slots are never renumbered when a column is removed.
type catalog struct {
	bySlot map[string]int
	order  []catalogEntry
}

func newCatalog() catalog {
	return catalog{bySlot: make(map[string]int)}
}

func (c *catalog) lookup(name string) (int, bool) {
	slot, ok := c.bySlot[name]
	return slot, ok
}

func (c *catalog) add(name string, slot int) {
	c.bySlot[name] = slot
	c.order = append(c.order, catalogEntry{name: name, slot: slot})
}

func (c *catalog) remove(name string) (int, bool) {
	slot, ok := c.bySlot[name]
	if !ok {
		return 0, false
	}
	delete(c.bySlot, name)
	c.order = slices.DeleteFunc(c.order, func(e catalogEntry) bool { return e.name == name })
	return slot, true
}

func (c *catalog) rename(from, to string) bool {
	slot, ok := c.bySlot[from]
	if !ok {
		return false
	}
	delete(c.bySlot, from)
	c.bySlot[to] = slot
	for i := range c.order {
		if c.order[i].name == from {
			c.order[i].name = to
			break
		}
	}
	return true
}

func (c *catalog) len() int { return len(c.order) }

func (c *catalog) names() []string {
	out := make([]string, len(c.order))
	for i, e := range c.order {
		out[i] = e.name
	}
	return out
}
