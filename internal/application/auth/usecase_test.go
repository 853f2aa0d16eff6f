package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

type fakeMailer struct {
	sent []struct{ to, subject, body string }
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, struct{ to, subject, body string }{to, subject, body})
	return nil
}

func newTestUseCase() (*auth.AuthUseCase, *fakeUserRepo, *fakeMailer) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	uc := auth.NewAuthUseCase(repo, mailer, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
	return uc, repo, mailer
}

func signupTestUser(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserResponse {
	t.Helper()
	user, err := uc.Signup(dto.SignupRequest{
		Email:    email,
		Password: "contraseña-segura",
		FullName: "Usuario de Prueba",
	})
	require.NoError(t, err)
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Signup / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_AsignaRolStaffYActiva(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	user := signupTestUser(t, uc, "ana@almacen.local")

	assert.Equal(t, entity.RoleStaff, user.Role, "el alta siempre asigna rol staff")
	assert.True(t, user.IsActive)

	stored := repo.users["ana@almacen.local"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-segura", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("contraseña-segura")))
}

func TestSignup_EmailDuplicado_Rechazado(t *testing.T) {
	uc, _, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")

	_, err := uc.Signup(dto.SignupRequest{Email: "ana@almacen.local", Password: "otra-contraseña"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesCorrectas_DevuelveToken(t *testing.T) {
	uc, _, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")

	out, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "contraseña-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, "ana@almacen.local", out.User.Email)
}

func TestLogin_PasswordIncorrecta_Unauthorized(t *testing.T) {
	uc, _, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")

	_, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_NotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@almacen.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva_Forbidden(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")
	repo.users["ana@almacen.local"].IsActive = false

	_, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "contraseña-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// ForgotPassword — generación y envío del código
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotPassword_GeneraCodigoYEnviaCorreo(t *testing.T) {
	uc, repo, mailer := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")

	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))

	stored := repo.users["ana@almacen.local"]
	assert.Len(t, stored.ResetCode, 6, "el código es de 6 dígitos")
	require.NotNil(t, stored.ResetCodeExpiry)
	assert.True(t, stored.ResetCodeExpiry.After(time.Now()), "el código debe tener vigencia futura")
	assert.Zero(t, stored.ResetAttempts)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@almacen.local", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, stored.ResetCode, "el correo incluye el código")
}

func TestForgotPassword_EmailInexistente_SilenciosoSinCorreo(t *testing.T) {
	uc, _, mailer := newTestUseCase()

	// No revela si la cuenta existe: ni error ni correo.
	assert.NoError(t, uc.ForgotPassword("nadie@almacen.local"))
	assert.Empty(t, mailer.sent)
}

func TestForgotPassword_NuevaSolicitud_ReiniciaIntentos(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")

	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))
	repo.users["ana@almacen.local"].ResetAttempts = 3

	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))
	assert.Zero(t, repo.users["ana@almacen.local"].ResetAttempts)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyOTP / ResetPassword — verificación, expiración y límite de intentos
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyOTP_CodigoCorrecto_NoConsume(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")
	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))
	code := repo.users["ana@almacen.local"].ResetCode

	assert.NoError(t, uc.VerifyOTP("ana@almacen.local", code))
	// Verificar no consume: se puede verificar de nuevo y luego resetear.
	assert.NoError(t, uc.VerifyOTP("ana@almacen.local", code))
}

func TestVerifyOTP_SinCodigoPendiente_Invalido(t *testing.T) {
	uc, _, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")

	err := uc.VerifyOTP("ana@almacen.local", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode)
}

func TestVerifyOTP_CodigoExpirado_LimpiaYRechaza(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")
	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))

	past := time.Now().Add(-time.Minute)
	repo.users["ana@almacen.local"].ResetCodeExpiry = &past

	err := uc.VerifyOTP("ana@almacen.local", repo.users["ana@almacen.local"].ResetCode)
	assert.ErrorIs(t, err, domain.ErrResetCodeExpired)
	assert.Empty(t, repo.users["ana@almacen.local"].ResetCode, "el código expirado se limpia")
}

func TestVerifyOTP_IntentosAgotados_InvalidaCodigo(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")
	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))
	code := repo.users["ana@almacen.local"].ResetCode

	// Cuatro fallos: código inválido pero aún vigente.
	for i := 0; i < entity.MaxResetAttempts-1; i++ {
		err := uc.VerifyOTP("ana@almacen.local", "000000")
		assert.ErrorIs(t, err, domain.ErrInvalidResetCode)
	}
	// Quinto fallo: se agotan los intentos y el código queda invalidado.
	err := uc.VerifyOTP("ana@almacen.local", "000000")
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
	assert.Empty(t, repo.users["ana@almacen.local"].ResetCode)

	// Incluso el código correcto ya no sirve: hay que pedir uno nuevo.
	err = uc.VerifyOTP("ana@almacen.local", code)
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode)
}

func TestResetPassword_CambiaHashYLimpiaCodigo(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")
	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))
	code := repo.users["ana@almacen.local"].ResetCode

	require.NoError(t, uc.ResetPassword("ana@almacen.local", code, "nueva-contraseña"))

	stored := repo.users["ana@almacen.local"]
	assert.Empty(t, stored.ResetCode)
	assert.Nil(t, stored.ResetCodeExpiry)
	assert.Zero(t, stored.ResetAttempts)

	// La contraseña vieja ya no sirve; la nueva sí.
	_, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "contraseña-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Email: "ana@almacen.local", Password: "nueva-contraseña"})
	assert.NoError(t, err)
}

func TestResetPassword_CodigoIncorrecto_NoCambiaNada(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	signupTestUser(t, uc, "ana@almacen.local")
	require.NoError(t, uc.ForgotPassword("ana@almacen.local"))
	hashBefore := repo.users["ana@almacen.local"].PasswordHash

	err := uc.ResetPassword("ana@almacen.local", "000000", "nueva-contraseña")
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode)
	assert.Equal(t, hashBefore, repo.users["ana@almacen.local"].PasswordHash)
}
