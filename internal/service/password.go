package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost — фиксированный фактор стоимости bcrypt.
// Проверка намеренно дорогая, чтобы перебор по словарю был невыгоден.
const passwordHashCost = 10

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.password.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем. Любая причина отказа
// (битый хэш, несовпадение) неотличима для вызывающего: просто false.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
