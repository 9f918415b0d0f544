package plans

import "github.com/ryogrid/HeapDB/storage/table/schema"

type PlanType int

const (
	SeqScan PlanType = iota
	Insert
	Filter
)

type Plan interface {
	OutputSchema() *schema.Schema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
}

// AbstractPlanNode holds the parts shared by every plan node.
// outputSchema is nil when the schema is decided by the executor.
type AbstractPlanNode struct {
	outputSchema *schema.Schema
	children     []Plan
}

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan {
	if childIndex >= uint32(len(p.children)) {
		return nil
	}
	return p.children[childIndex]
}

func (p *AbstractPlanNode) GetChildren() []Plan {
	return p.children
}

func (p *AbstractPlanNode) OutputSchema() *schema.Schema {
	return p.outputSchema
}
