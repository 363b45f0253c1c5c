package service

import (
	"errors"

	"gorm.io/gorm"
)

// Domain sentinel errors. Handlers map these to HTTP status codes; messages
// are operator-facing. Everything that depends on shared durable state (stock,
// session status, duplicate cancellation) is only authoritative from the
// backend transaction, so these are raised there even when the client already
// validated the precondition.
var (
	ErrSessionAlreadyOpen   = errors.New("Já existe um caixa aberto. Feche-o antes de abrir um novo.")
	ErrSessionNotFound      = errors.New("Caixa não encontrado")
	ErrSessionClosed        = errors.New("Caixa fechado — reabra o caixa para registrar vendas")
	ErrSessionAlreadyClosed = errors.New("Caixa já está fechado")

	ErrEmptyCart            = errors.New("O carrinho está vazio")
	ErrInsufficientPayment  = errors.New("O valor pago é insuficiente para o total da venda")
	ErrInvalidPaymentMethod = errors.New("Forma de pagamento inválida para este cliente")
	ErrInsufficientStock    = errors.New("Estoque insuficiente para concluir a venda")

	ErrOrderNotFound         = errors.New("Pedido não encontrado")
	ErrOrderAlreadyCancelled = errors.New("Pedido já cancelado")
	ErrOrderNotPaid          = errors.New("Apenas pedidos pagos podem ser cancelados")
	ErrReasonRequired        = errors.New("Informe o motivo do cancelamento")

	ErrProductNotFound     = errors.New("Produto não encontrado")
	ErrServiceNotFound     = errors.New("Serviço não encontrado")
	ErrCustomerNotFound    = errors.New("Cliente não encontrado")
	ErrAppointmentNotFound = errors.New("Agendamento não encontrado")
)

// notFound reports whether err is a gorm record miss, which the services
// translate into their own sentinel errors.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
