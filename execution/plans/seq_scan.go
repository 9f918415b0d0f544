package plans

// SeqScanPlanNode scans every tuple of a table. An empty alias means the table name.
type SeqScanPlanNode struct {
	*AbstractPlanNode
	tableOID uint32
	alias    string
}

func NewSeqScanPlanNode(tableOID uint32, alias string) Plan {
	return &SeqScanPlanNode{&AbstractPlanNode{nil, nil}, tableOID, alias}
}

func (p *SeqScanPlanNode) GetTableOID() uint32 {
	return p.tableOID
}

func (p *SeqScanPlanNode) GetAlias() string {
	return p.alias
}

func (p *SeqScanPlanNode) GetType() PlanType {
	return SeqScan
}
