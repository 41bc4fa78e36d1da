package authhandler

import (
	"kaizen-tools-backend/db"
	userstore "kaizen-tools-backend/lib/users/store"
	authhelpers "kaizen-tools-backend/lib/utils/auth-helpers"
	authutils "kaizen-tools-backend/lib/utils/auth-utils"
	authapimodels "kaizen-tools-backend/models/api/auth"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, err error)
	Me(userID string) (view authapimodels.MeView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: userstore.NewInstance(db.DB),
	}
}

type impl struct {
	store userstore.Provider
}

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return authapimodels.JWTResponse{}, errors.New("пользователь с такой почтой не найден")
	}
	if authhelpers.GetMD5Hash(password) != user.Password {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, errors.New("пользователь не прошел проверку пароля")
	}
	departmentID := ""
	if user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}
	tokenString, err := authutils.GetToken(user.ID, user.FullName(), user.Role, departmentID)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token: tokenString,
	}, nil
}

func (i impl) Me(userID string) (view authapimodels.MeView, err error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		log.
			WithError(err).
			WithField("user_id", userID).
			Error("ошибка получения пользователя")
		return authapimodels.MeView{}, err
	}
	if user == nil {
		return authapimodels.MeView{}, errors.New("пользователь не найден")
	}
	view = authapimodels.MeView{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName(),
		Role:     user.Role,
		RoleName: user.Role.ToHuman(),
	}
	if user.DepartmentID != nil {
		view.DepartmentID = *user.DepartmentID
	}
	if user.Department != nil {
		view.DepartmentName = user.Department.DisplayName
	}
	return view, nil
}
