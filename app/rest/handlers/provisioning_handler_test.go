package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"provisioning-service/app/domain"
	"provisioning-service/app/mocks"
)

type handlerFixture struct {
	registration *mocks.MockRegistrationUsecase
	repair       *mocks.MockRepairUsecase
	inspection   *mocks.MockInspectionUsecase
	handler      *ProvisioningHandler
	echo         *echo.Echo
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	registration := mocks.NewMockRegistrationUsecase(ctrl)
	repair := mocks.NewMockRepairUsecase(ctrl)
	inspection := mocks.NewMockInspectionUsecase(ctrl)

	return &handlerFixture{
		registration: registration,
		repair:       repair,
		inspection:   inspection,
		handler:      NewProvisioningHandler(registration, repair, inspection, slog.Default()),
		echo:         echo.New(),
	}
}

func (f *handlerFixture) postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return f.echo.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func validRegisterBody(identityID uuid.UUID) string {
	return fmt.Sprintf(`{
		"identityId": %q,
		"email": "ada@acme.test",
		"firstName": "Ada",
		"lastName": "Lovelace",
		"tenantName": "Acme Inc."
	}`, identityID)
}

func TestProvisioningHandler_Register(t *testing.T) {
	identityID := uuid.New()

	t.Run("successful registration returns 201", func(t *testing.T) {
		f := newHandlerFixture(t)

		tenant := &domain.TenantRecord{ID: uuid.New(), Name: "Acme Inc.", Subdomain: "acme-inc"}
		f.registration.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
				require.NotNil(t, req.IdentityID)
				assert.Equal(t, identityID, *req.IdentityID)
				assert.Equal(t, "ada@acme.test", req.Email)
				return &domain.RegistrationResult{Tenant: tenant, Subdomain: "acme-inc"}, nil
			})

		c, rec := f.postJSON(t, "/v1/provisioning/register", validRegisterBody(identityID))
		require.NoError(t, f.handler.Register(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, true, envelope["success"])
	})

	t.Run("suffixed subdomain is explained in the message", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.registration.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(&domain.RegistrationResult{Subdomain: "acme-inc-042", SubdomainSuffixed: true}, nil)

		c, rec := f.postJSON(t, "/v1/provisioning/register", validRegisterBody(identityID))
		require.NoError(t, f.handler.Register(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "suffix")
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		f := newHandlerFixture(t)

		c, rec := f.postJSON(t, "/v1/provisioning/register", `{"email": "ada@acme.test"}`)
		require.NoError(t, f.handler.Register(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, false, envelope["success"])
	})

	t.Run("malformed identityId returns 400", func(t *testing.T) {
		f := newHandlerFixture(t)

		body := `{
			"identityId": "not-a-uuid",
			"email": "ada@acme.test",
			"firstName": "Ada",
			"lastName": "Lovelace",
			"tenantName": "Acme Inc."
		}`
		c, rec := f.postJSON(t, "/v1/provisioning/register", body)
		require.NoError(t, f.handler.Register(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("subdomain exhaustion returns 409", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.registration.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(nil, &domain.SubdomainExhaustedError{Base: "acme-inc", Attempts: 10})

		c, rec := f.postJSON(t, "/v1/provisioning/register", validRegisterBody(identityID))
		require.NoError(t, f.handler.Register(c))

		assert.Equal(t, http.StatusConflict, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "SUBDOMAIN_EXHAUSTED", envelope["code"])
	})

	t.Run("saga failure returns 500 with caller guidance", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.registration.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(nil, &domain.ProvisioningFailedError{
				State:            domain.StateTenantCreated,
				TenantRolledBack: true,
				Transient:        true,
				Cause:            errors.New("23503"),
			})

		c, rec := f.postJSON(t, "/v1/provisioning/register", validRegisterBody(identityID))
		require.NoError(t, f.handler.Register(c))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "retry later")
	})
}

func TestProvisioningHandler_Recover(t *testing.T) {
	t.Run("orphaned identity deleted", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repair.EXPECT().
			Recover(gomock.Any(), "ada@acme.test").
			Return(&domain.RecoverResult{IdentityID: uuid.New(), IdentityDeleted: true}, nil)

		c, rec := f.postJSON(t, "/v1/provisioning/recover", `{"email": "ada@acme.test"}`)
		require.NoError(t, f.handler.Recover(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "register again")
	})

	t.Run("healthy identity reported as nothing to recover", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repair.EXPECT().
			Recover(gomock.Any(), "ada@acme.test").
			Return(&domain.RecoverResult{HasUserRecord: true, IdentityID: uuid.New()}, nil)

		c, rec := f.postJSON(t, "/v1/provisioning/recover", `{"email": "ada@acme.test"}`)
		require.NoError(t, f.handler.Recover(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "nothing to recover")
	})

	t.Run("unknown email returns 404", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repair.EXPECT().
			Recover(gomock.Any(), "ghost@acme.test").
			Return(nil, &domain.NoIdentityError{Email: "ghost@acme.test"})

		c, rec := f.postJSON(t, "/v1/provisioning/recover", `{"email": "ghost@acme.test"}`)
		require.NoError(t, f.handler.Recover(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "IDENTITY_NOT_FOUND", envelope["code"])
	})

	t.Run("missing email returns 400", func(t *testing.T) {
		f := newHandlerFixture(t)

		c, rec := f.postJSON(t, "/v1/provisioning/recover", `{}`)
		require.NoError(t, f.handler.Recover(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProvisioningHandler_FixUser(t *testing.T) {
	t.Run("relinked user", func(t *testing.T) {
		f := newHandlerFixture(t)

		identityID := uuid.New()
		f.repair.EXPECT().
			Relink(gomock.Any(), "ada@acme.test").
			Return(&domain.RelinkResult{IdentityID: identityID}, nil)

		c, rec := f.postJSON(t, "/v1/provisioning/fix-user", `{"email": "ada@acme.test"}`)
		require.NoError(t, f.handler.FixUser(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "linked to identity")
	})

	t.Run("already linked is a no-op", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repair.EXPECT().
			Relink(gomock.Any(), "ada@acme.test").
			Return(&domain.RelinkResult{IdentityID: uuid.New(), AlreadyLinked: true}, nil)

		c, rec := f.postJSON(t, "/v1/provisioning/fix-user", `{"email": "ada@acme.test"}`)
		require.NoError(t, f.handler.FixUser(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "nothing to fix")
	})

	t.Run("missing user record returns 404", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repair.EXPECT().
			Relink(gomock.Any(), "ghost@acme.test").
			Return(nil, &domain.NoUserRecordError{Email: "ghost@acme.test"})

		c, rec := f.postJSON(t, "/v1/provisioning/fix-user", `{"email": "ghost@acme.test"}`)
		require.NoError(t, f.handler.FixUser(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "USER_NOT_FOUND", envelope["code"])
	})
}

func TestProvisioningHandler_CleanupDuplicates(t *testing.T) {
	t.Run("duplicates removed", func(t *testing.T) {
		f := newHandlerFixture(t)

		kept := &domain.UserRecord{ID: uuid.New(), Email: "ada@acme.test"}
		f.repair.EXPECT().
			Deduplicate(gomock.Any(), "ada@acme.test").
			Return(&domain.DeduplicateResult{
				Kept:    kept,
				Deleted: []domain.UserSummary{{ID: uuid.New()}},
			}, nil)

		c, rec := f.postJSON(t, "/v1/provisioning/cleanup-duplicates", `{"email": "ada@acme.test"}`)
		require.NoError(t, f.handler.CleanupDuplicates(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ambiguous state returns 400", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.repair.EXPECT().
			Deduplicate(gomock.Any(), "ada@acme.test").
			Return(nil, &domain.AmbiguousDuplicateError{Email: "ada@acme.test", Count: 3})

		c, rec := f.postJSON(t, "/v1/provisioning/cleanup-duplicates", `{"email": "ada@acme.test"}`)
		require.NoError(t, f.handler.CleanupDuplicates(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "AMBIGUOUS_DUPLICATES", envelope["code"])
	})
}

func TestProvisioningHandler_Debug(t *testing.T) {
	t.Run("returns the consistency report", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.inspection.EXPECT().
			Inspect(gomock.Any(), "ada@acme.test").
			Return(&domain.ConsistencyReport{
				Identity: &domain.Identity{ID: uuid.New(), Email: "ada@acme.test"},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/provisioning/debug?email=ada@acme.test", nil)
		rec := httptest.NewRecorder()
		c := f.echo.NewContext(req, rec)

		require.NoError(t, f.handler.Debug(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown email returns 404", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.inspection.EXPECT().
			Inspect(gomock.Any(), "ghost@acme.test").
			Return(nil, &domain.NoIdentityError{Email: "ghost@acme.test"})

		req := httptest.NewRequest(http.MethodGet, "/v1/provisioning/debug?email=ghost@acme.test", nil)
		rec := httptest.NewRecorder()
		c := f.echo.NewContext(req, rec)

		require.NoError(t, f.handler.Debug(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "IDENTITY_NOT_FOUND", envelope["code"])
	})

	t.Run("missing email query returns 400", func(t *testing.T) {
		f := newHandlerFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/provisioning/debug", nil)
		rec := httptest.NewRecorder()
		c := f.echo.NewContext(req, rec)

		require.NoError(t, f.handler.Debug(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
