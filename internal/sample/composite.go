package sample

// Composite fills consecutive sub-ranges of one block from a list of field
// generators.
type Composite struct {
	fields  []Generator
	offsets []int
	n       int
}

// Concat builds a Composite whose fields are laid out in argument order.
func Concat(fields ...Generator) *Composite {
	c := &Composite{
		fields:  fields,
		offsets: make([]int, len(fields)),
	}
	for i, f := range fields {
		c.offsets[i] = c.n
		c.n += f.Len()
	}
	return c
}

// Len returns the summed length of all fields.
func (c *Composite) Len() int { return c.n }

// Fill draws every field in order.
func (c *Composite) Fill(src *Source, dst []float64) {
	for i, f := range c.fields {
		off := c.offsets[i]
		f.Fill(src, dst[off:off+f.Len()])
	}
}

// Offset returns the start of field i within a block.
func (c *Composite) Offset(i int) int { return c.offsets[i] }
