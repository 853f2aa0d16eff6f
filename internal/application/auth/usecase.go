package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Vigencia del código de recuperación de contraseña.
const resetCodeTTL = 10 * time.Minute

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil y
// recuperación de contraseña por código de un solo uso.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg}
}

// Signup crea un usuario: hashea password con bcrypt y persiste con rol staff.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Signup(in dto.SignupRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         entity.RoleStaff,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *toUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ForgotPassword genera un código de 6 dígitos, lo guarda con vigencia de 10
// minutos y lo envía por correo. Si el email no existe no hace nada: el
// handler responde siempre el mismo mensaje para no revelar cuentas.
func (uc *AuthUseCase) ForgotPassword(email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	code, err := generateResetCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(resetCodeTTL)
	user.ResetCode = code
	user.ResetCodeExpiry = &expiry
	user.ResetAttempts = 0
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	body := fmt.Sprintf(
		"Tu código de recuperación de contraseña es: %s\n\nEl código expira en 10 minutos.",
		code,
	)
	return uc.mailer.Send(user.Email, "Recuperación de contraseña", body)
}

// VerifyOTP comprueba el código de recuperación sin consumirlo.
func (uc *AuthUseCase) VerifyOTP(email, code string) error {
	_, err := uc.checkResetCode(email, code)
	return err
}

// ResetPassword re-verifica el código, reemplaza el hash de la contraseña y
// limpia el código con su estado asociado.
func (uc *AuthUseCase) ResetPassword(email, code, newPassword string) error {
	user, err := uc.checkResetCode(email, code)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ClearResetCode()
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// checkResetCode valida el código pendiente de un usuario. Cada fallo
// incrementa el contador de intentos; al llegar al límite el código se
// invalida y hay que pedir uno nuevo (mitigación de fuerza bruta).
func (uc *AuthUseCase) checkResetCode(email, code string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ResetCode == "" || user.ResetCodeExpiry == nil {
		return nil, domain.ErrInvalidResetCode
	}
	if time.Now().After(*user.ResetCodeExpiry) {
		user.ClearResetCode()
		user.UpdatedAt = time.Now()
		_ = uc.userRepo.Update(user)
		return nil, domain.ErrResetCodeExpired
	}
	if user.ResetCode != code {
		user.ResetAttempts++
		tooMany := user.ResetAttempts >= entity.MaxResetAttempts
		if tooMany {
			// código invalidado: hace falta pedir uno nuevo
			user.ResetCode = ""
			user.ResetCodeExpiry = nil
		}
		user.UpdatedAt = time.Now()
		_ = uc.userRepo.Update(user)
		if tooMany {
			return nil, domain.ErrTooManyAttempts
		}
		return nil, domain.ErrInvalidResetCode
	}
	return user, nil
}

// generateResetCode devuelve un código numérico de 6 dígitos (crypto/rand).
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
