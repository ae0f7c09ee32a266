// internal/conciliacao/erros.go
package conciliacao

import "errors"

// Taxonomia de erros do motor de conciliação. Os handlers mapeiam cada
// sentinela para um status HTTP; o lote os registra por item sem abortar.
var (
	ErrNaoEncontrado     = errors.New("registro não encontrado")
	ErrValorInvalido     = errors.New("valor inválido")
	ErrJaConciliado      = errors.New("movimento já conciliado")
	ErrViolacaoRestricao = errors.New("restrição violada")
	ErrTransiente        = errors.New("falha transitória de armazenamento")
)
