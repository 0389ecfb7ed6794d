package authz

// Resource is a domain noun whose actions can be permitted.
type Resource string

const (
	ResourceUser     Resource = "user"
	ResourceSession  Resource = "session"
	ResourceReport   Resource = "report"
	ResourceCategory Resource = "category"
	ResourceCourse   Resource = "course"
)

// Action is a single operation on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// User-specific actions.
	ActionSetRole     Action = "set-role"
	ActionBan         Action = "ban"
	ActionImpersonate Action = "impersonate"
	ActionSetPassword Action = "set-password"

	// Report review action (professor/coordenador).
	ActionValidate Action = "validate"
)

// Statement maps each resource to the actions that exist for it. It is
// the universe of checkable permissions: granting an action outside the
// statement is a configuration error.
type Statement map[Resource][]Action

// DefaultStatement declares every permission the system knows about.
func DefaultStatement() Statement {
	return Statement{
		ResourceUser: {
			ActionCreate, ActionList, ActionSetRole, ActionBan,
			ActionImpersonate, ActionDelete, ActionSetPassword,
		},
		ResourceSession: {
			ActionCreate, ActionDelete,
		},
		ResourceReport: {
			ActionCreate, ActionList, ActionUpdate, ActionDelete, ActionValidate,
		},
		ResourceCategory: {
			ActionCreate, ActionUpdate, ActionDelete, ActionList,
		},
		ResourceCourse: {
			ActionCreate, ActionList, ActionUpdate, ActionDelete,
		},
	}
}
