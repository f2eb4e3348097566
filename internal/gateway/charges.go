package gateway

// Charge is one payable category for a submitted service request. No
// amounts are attached yet: pricing is produced off-platform after gap
// analysis, so the catalog only drives screen flow and transaction labels.
type Charge struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Stage string `json:"stage"`
}

var chargeCatalog = []Charge{
	{ID: "basic-legal", Label: "Basic Investigation / Legal Charges", Stage: "gap_analysis"},
	{ID: "estimated", Label: "Estimated Charge", Stage: "estimation"},
	{ID: "gov-fees", Label: "Gov Fees", Stage: "government_fees"},
}

func Charges() []Charge {
	out := make([]Charge, len(chargeCatalog))
	copy(out, chargeCatalog)
	return out
}

func ChargeByID(id string) (Charge, bool) {
	for _, charge := range chargeCatalog {
		if charge.ID == id {
			return charge, true
		}
	}
	return Charge{}, false
}
