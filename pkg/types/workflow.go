package types

// WorkflowContextSchemaVersion is bumped whenever the shape of the stored
// context changes; a loaded context with a different version is discarded as
// stale rather than misparsed.
const WorkflowContextSchemaVersion = 1

// WorkflowContext is the single record threaded through the registration
// workflow. It is the only channel between screens: one owner, one schema,
// no per-screen key soup.
type WorkflowContext struct {
	SchemaVersion    int              `json:"schemaVersion"`
	RegistrationType RegistrationType `json:"registrationType"`

	Project  *ProjectDraft  `json:"project"`
	Property *PropertyDraft `json:"property"`

	// Server-assigned IDs, recorded when the drafts are reconciled into
	// remote records at sub-service selection. Empty until then.
	RemoteProjectID  string `json:"remoteProjectId"`
	RemotePropertyID string `json:"remotePropertyId"`

	MainService string `json:"mainService"`
	SubService  string `json:"subService"`

	// CommonDocs records the uploaded common-document file names per slot.
	CommonDocs map[string]string `json:"commonDocs"`

	ServiceRequestID string `json:"serviceRequestId"`
}

func NewWorkflowContext() *WorkflowContext {
	return &WorkflowContext{
		SchemaVersion: WorkflowContextSchemaVersion,
		CommonDocs:    make(map[string]string),
	}
}
