package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/auth"
	"github.com/alnah/go-bnccdoc/internal/generation"
	"github.com/alnah/go-bnccdoc/internal/planning"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// errInvalidID is returned for malformed plan IDs in the path.
var errInvalidID = errors.New("invalid plan id")

// User-facing messages.
const (
	msgMissingToken       = "Token de acesso ausente"
	msgInvalidToken       = "Token de acesso inválido"
	msgExpiredToken       = "Token de acesso expirado"
	msgAccessDenied       = "Acesso negado"
	msgSettingsForbidden  = "Apenas gestores podem alterar configurações"
	msgInvalidBody        = "Requisição inválida"
	msgInvalidID          = "ID inválido"
	msgInvalidField       = "Campo inválido"
	msgDuplicateEmail     = "Email já cadastrado"
	msgInvalidCredentials = "Credenciais inválidas"
	msgPlanNotFound       = "Plano não encontrado"
	msgYearRequired       = "Ano não especificado"
	msgNoPlansForYear     = "Nenhum plano encontrado para este ano"
	msgNoPlans            = "Nenhum plano encontrado"
	msgNothingToDelete    = "Nenhum ID fornecido para exclusão"
	msgStageOrder         = "As etapas devem ser preenchidas em ordem"
	msgInvalidStage       = "Etapa inválida"
	msgEmptySkill         = "Código da habilidade obrigatório"
	msgEmptyResource      = "Tipo de recurso obrigatório"
	msgNoContent          = "O plano ainda não tem conteúdo gerado"
	msgNoGenerator        = "Geração de conteúdo não configurada"

	msgPDFFailed      = "Erro ao gerar PDF"
	msgDOCXFailed     = "Erro ao gerar Word"
	msgHTMLFailed     = "Erro ao gerar HTML"
	msgYearlyFailed   = "Erro ao gerar PDF em lote"
	msgBatchFailed    = "Erro na exportação em lote"
	msgListFailed     = "Erro ao listar planejamentos"
	msgUpdateFailed   = "Erro ao atualizar plano"
	msgDeleteFailed   = "Erro ao excluir planejamentos"
	msgGenerateFailed = "Erro ao gerar conteúdo"
	msgSettingsFailed = "Erro ao carregar configurações"
	msgRegisterFailed = "Erro ao cadastrar usuário"
	msgLoginFailed    = "Erro ao autenticar"
)

// statusFor maps an error onto an HTTP status and a user-facing message.
// Errors with no specific mapping yield 500 and fallback.
func statusFor(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, errInvalidID):
		return http.StatusBadRequest, msgInvalidID
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, msgPlanNotFound
	case errors.Is(err, bnccdoc.ErrEmptyPlanSet):
		return http.StatusNotFound, msgNoPlans
	case errors.Is(err, generation.ErrQuotaExceeded):
		return http.StatusTooManyRequests, generation.QuotaMessage
	case errors.Is(err, planning.ErrStageOrder):
		return http.StatusBadRequest, msgStageOrder
	case errors.Is(err, planning.ErrInvalidStage), errors.Is(err, generation.ErrInvalidStage):
		return http.StatusBadRequest, msgInvalidStage
	case errors.Is(err, planning.ErrEmptySkill):
		return http.StatusBadRequest, msgEmptySkill
	case errors.Is(err, planning.ErrNothingToDelete):
		return http.StatusBadRequest, msgNothingToDelete
	case errors.Is(err, planning.ErrEmptyResource):
		return http.StatusBadRequest, msgEmptyResource
	case errors.Is(err, planning.ErrNoContent):
		return http.StatusBadRequest, msgNoContent
	case errors.Is(err, planning.ErrNoGenerator), errors.Is(err, generation.ErrNoAPIKey):
		return http.StatusServiceUnavailable, msgNoGenerator
	case errors.Is(err, store.ErrDuplicateEmail):
		return http.StatusBadRequest, msgDuplicateEmail
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, auth.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidBody
	}
	return http.StatusInternalServerError, fallback
}

// fail records err on the context for the request log and answers with
// the mapped status and message.
func fail(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	status, msg := statusFor(err, fallback)
	c.JSON(status, gin.H{"error": msg})
}

// abort answers with status and msg and stops the handler chain.
func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
