package apperr

// ErrCode is a typed error code enum for consistent error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrUnauthorized       ErrCode = "UNAUTHORIZED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrUserBanned         ErrCode = "USER_BANNED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrNotReportOwner   ErrCode = "NOT_REPORT_OWNER"
	ErrReportLocked     ErrCode = "REPORT_LOCKED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrUserNotFound     ErrCode = "USER_NOT_FOUND"
	ErrReportNotFound   ErrCode = "REPORT_NOT_FOUND"
	ErrCategoryNotFound ErrCode = "CATEGORY_NOT_FOUND"
	ErrCourseNotFound   ErrCode = "COURSE_NOT_FOUND"
	ErrEmailTaken       ErrCode = "EMAIL_TAKEN"
	ErrCourseCodeTaken  ErrCode = "COURSE_CODE_TAKEN"
	ErrCourseHasAlunos  ErrCode = "COURSE_HAS_STUDENTS"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrUnauthorized:
		return "Você precisa estar autenticado para realizar esta ação."
	case ErrInvalidCredentials:
		return "E-mail ou senha incorretos."
	case ErrSessionInvalidated:
		return "Sua sessão expirou. Faça login novamente."
	case ErrUserBanned:
		return "Esta conta está suspensa."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Você não tem permissão para realizar esta ação."
	case ErrPermissionDenied:
		return "Permissão negada."
	case ErrNotReportOwner:
		return "Você não é o autor deste relatório."
	case ErrReportLocked:
		return "Este relatório já foi avaliado e não pode mais ser alterado."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dados inválidos. Verifique os campos informados."
	case ErrInvalidID:
		return "Formato de ID inválido."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrUserNotFound:
		return "Usuário não encontrado."
	case ErrReportNotFound:
		return "Relatório não encontrado."
	case ErrCategoryNotFound:
		return "Categoria não encontrada."
	case ErrCourseNotFound:
		return "Curso não encontrado."
	case ErrEmailTaken:
		return "Já existe um usuário com este e-mail."
	case ErrCourseCodeTaken:
		return "Já existe um curso com este código."
	case ErrCourseHasAlunos:
		return "O curso não pode ser excluído: há alunos matriculados."
	case ErrDependencyExists:
		return "O registro não pode ser excluído porque ainda está em uso."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Ocorreu um erro interno. Tente novamente mais tarde."
	default:
		return "Ocorreu um erro inesperado."
	}
}
