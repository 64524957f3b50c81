package spapi

import "context"

// page é o resultado de uma chamada paginada. raw conta os elementos da resposta antes de qualquer
// filtro, assim uma página inteiramente descartada não encerra a paginação.
type page[T any] struct {
	items []T
	next  string
	raw   int
}

// pageFunc busca uma página a partir do token (vazio na primeira).
type pageFunc[T any] func(ctx context.Context, token string) (page[T], error)

// paginate percorre as páginas até não haver token ou a resposta vir sem elementos.
// Em caso de erro devolve o que já foi acumulado, incluindo os itens da página que falhou.
func paginate[T any](ctx context.Context, fetch pageFunc[T]) ([]T, error) {
	var all []T
	token := ""

	for {
		p, err := fetch(ctx, token)
		all = append(all, p.items...)
		if err != nil {
			return all, err
		}

		if p.next == "" || p.raw == 0 {
			return all, nil
		}
		token = p.next
	}
}
