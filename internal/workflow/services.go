package workflow

// MainService is one entry on the service selection screen. Only the
// e-katha flow is wired end to end; the remaining entries are selectable
// but share the default document list.
type MainService struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var mainServices = []MainService{
	{ID: "record-room", Label: "Record Room Documents"},
	{ID: "survey", Label: "Survey Documents"},
	{ID: "e-katha", Label: "E-katha"},
	{ID: "property-id", Label: "Property Identification Documents"},
	{ID: "conversion", Label: "Conversion of Land"},
	{ID: "change-land", Label: "Change of Land"},
	{ID: "land-grants", Label: "Land Grants"},
	{ID: "podi-durastthu", Label: "Podi and Durastthu"},
	{ID: "plan-approved", Label: "Plan Approved"},
	{ID: "amendments", Label: "Ammendments"},
	{ID: "noc", Label: "No Objection Certificate"},
	{ID: "land-acquisitions", Label: "Land Acquisitions"},
	{ID: "land-allotments", Label: "Land Allotments"},
	{ID: "property-bifurcation", Label: "Property Bifurcation"},
	{ID: "electricity", Label: "Electricity Board Approvals"},
	{ID: "water-supply", Label: "Water Supply Board Approvals"},
	{ID: "pollution", Label: "Pollution Control Board Approvals"},
	{ID: "land-assessment", Label: "Land Assessment, Survey & Property Valuations"},
	{ID: "local-authority", Label: "Local Authority Services"},
	{ID: "legal", Label: "Legal Documents"},
	{ID: "third-party", Label: "Third Party Opinion"},
	{ID: "business", Label: "Business Records"},
	{ID: "personal", Label: "Personal Record"},
}

var ekathaSubServices = []string{
	"New E-Katha Registration",
	"Khata Bifurcation",
	"Khata Amalgamation",
	"Khata Conversion / Update",
	"Duplicate / Re-print Khata Certificate",
	"Correction / Update Khata Details_Name Correction in Khata",
	"Correction / Update Khata Details_Property Area / Measurement",
	"Correction / Update Khata Details_Property Usage / Type Correction",
	"Use downloadable e-Khata / Khata Certificate for legal/financial/trade use_Loan / Mortgage / Financial Transactions",
	"Use downloadable e-Khata / Khata Certificate for legal/financial/trade use_Property Sale / Purchase / Transfer",
	"Correction / Update Khata Details_Property Area / Measurement / Correction Details_Property Usage / Type Correction",
	"Use downloadable e-Khata / Khata Certificate for legal/financial/trade use_Legal / Court Verification",
	"Use downloadable e-Khata / Khata Certificate for legal/financial/trade use_Trade / Business Use (Mortgage, Lease, Rent)",
	"Use downloadable e-Khata / Khata Certificate for legal/financial/trade use_Gov Schemes / Subsidy Applications",
}

func MainServices() []MainService {
	out := make([]MainService, len(mainServices))
	copy(out, mainServices)
	return out
}

func MainServiceByID(id string) (MainService, bool) {
	for _, service := range mainServices {
		if service.ID == id {
			return service, true
		}
	}
	return MainService{}, false
}

func SubServices(mainServiceID string) []string {
	if mainServiceID != "e-katha" {
		return nil
	}
	out := make([]string, len(ekathaSubServices))
	copy(out, ekathaSubServices)
	return out
}

func ValidSubService(mainServiceID, subService string) bool {
	for _, candidate := range SubServices(mainServiceID) {
		if candidate == subService {
			return true
		}
	}
	return false
}
