package inventory

// Item is one inventory asset as we persist it: the fields that matter for
// change detection. Amounts are kept as strings because that is what the
// Steam endpoint returns; we compare them, we never do arithmetic on them.
type Item struct {
	ClassID    string `json:"classid"`
	Amount     string `json:"amount"`
	InstanceID string `json:"instanceid"`
}

// Snapshot maps asset ID -> Item. It is the full observed inventory at one
// point in time and the sole durable state of the program.
type Snapshot map[string]Item

// Description is display metadata shared by all items with the same
// classid/instanceid pair. Not persisted; rebuilt from every fetch.
type Description struct {
	Name string
}

// Descriptions maps "classid_instanceid" -> Description.
type Descriptions map[string]Description

// DescriptionKey builds the lookup key used by Descriptions.
func DescriptionKey(classID, instanceID string) string {
	return classID + "_" + instanceID
}

// AmountChange carries the old and new amount of an item present in both
// snapshots. Other fields are assumed stable for a given asset ID.
type AmountChange struct {
	Old string
	New string
}

// DiffResult is the outcome of comparing two snapshots.
type DiffResult struct {
	// Added holds entries whose key exists only in the current snapshot.
	Added map[string]Item
	// Removed holds entries whose key exists only in the previous snapshot.
	Removed map[string]Item
	// Changed holds entries present in both snapshots with different amounts.
	Changed map[string]AmountChange
}

// Empty reports whether the diff carries no changes at all.
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}
