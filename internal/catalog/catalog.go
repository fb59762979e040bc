// Package catalog holds the static sample catalog the storefront ships
// with. The data is seeded into the product repository at startup and is
// the fixture the filter/sort tests run against.
package catalog

import "loja/internal/models"

// Categories returns the browsable categories in display order.
func Categories() []models.Category {
	return []models.Category{
		{
			ID:    1,
			Name:  "Eletrônicos",
			Slug:  "eletronicos",
			Image: "https://images.pexels.com/photos/1029757/pexels-photo-1029757.jpeg",
		},
		{
			ID:    2,
			Name:  "Moda",
			Slug:  "moda",
			Image: "https://images.pexels.com/photos/934070/pexels-photo-934070.jpeg",
		},
		{
			ID:    3,
			Name:  "Casa & Decoração",
			Slug:  "casa-decoracao",
			Image: "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
		},
		{
			ID:    4,
			Name:  "Esportes",
			Slug:  "esportes",
			Image: "https://images.pexels.com/photos/4761352/pexels-photo-4761352.jpeg",
		},
	}
}

// CategoryBySlug resolves a navigation slug to its category. The second
// return is false for unknown slugs.
func CategoryBySlug(slug string) (models.Category, bool) {
	for _, c := range Categories() {
		if c.Slug == slug {
			return c, true
		}
	}
	return models.Category{}, false
}

// Products returns the sample catalog in catalog order. Callers receive a
// fresh slice and may reorder it freely.
func Products() []models.Product {
	return []models.Product{
		{
			ID:               1,
			Name:             "Smartphone XR Pro",
			Price:            2499.90,
			OldPrice:         2999.90,
			Description:      "Smartphone de última geração com câmera de alta resolução, processador potente e bateria de longa duração. Ideal para quem busca desempenho e qualidade em um único aparelho. Disponível em várias cores e com 128GB de armazenamento interno.",
			ShortDescription: "Smartphone com câmera profissional, 8GB RAM e 128GB de armazenamento.",
			Images: []string{
				"https://images.pexels.com/photos/404280/pexels-photo-404280.jpeg",
				"https://images.pexels.com/photos/1092644/pexels-photo-1092644.jpeg",
			},
			Category: "Eletrônicos",
			Tags:     []string{"smartphone", "tecnologia", "câmera"},
			Rating:   4.8,
			Stock:    25,
			Featured: true,
			Sale:     true,
		},
		{
			ID:               2,
			Name:             "Notebook UltraSlim",
			Price:            4999.90,
			Description:      "Notebook leve e potente para trabalho e entretenimento. Com processador de última geração, SSD rápido e tela de alta definição. Perfeito para profissionais que precisam de mobilidade sem abrir mão do desempenho.",
			ShortDescription: "Notebook ultrafino com processador Intel i7, 16GB RAM e SSD de 512GB.",
			Images: []string{
				"https://images.pexels.com/photos/18105/pexels-photo.jpg",
				"https://images.pexels.com/photos/7974/pexels-photo.jpg",
			},
			Category: "Eletrônicos",
			Tags:     []string{"notebook", "computador", "trabalho"},
			Rating:   4.7,
			Stock:    12,
			Featured: true,
		},
		{
			ID:               3,
			Name:             "Tênis Running Flex",
			Price:            349.90,
			OldPrice:         429.90,
			Description:      "Tênis para corrida com tecnologia de amortecimento avançada, material respirável e solado flexível para maior conforto durante os treinos. Desenvolvido para corridas de longa distância e treinos intensos.",
			ShortDescription: "Tênis esportivo com amortecimento e suporte para corridas.",
			Images: []string{
				"https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg",
				"https://images.pexels.com/photos/1598505/pexels-photo-1598505.jpeg",
			},
			Category: "Esportes",
			Tags:     []string{"tênis", "corrida", "esporte"},
			Rating:   4.5,
			Stock:    30,
			Sale:     true,
		},
		{
			ID:               4,
			Name:             "Camiseta Básica Premium",
			Price:            89.90,
			Description:      "Camiseta de algodão premium com corte moderno e acabamento de qualidade. Disponível em diversas cores e tamanhos. Tecido macio e durável para uso diário com estilo e conforto.",
			ShortDescription: "Camiseta de algodão de alta qualidade com corte moderno.",
			Images: []string{
				"https://images.pexels.com/photos/5384423/pexels-photo-5384423.jpeg",
				"https://images.pexels.com/photos/4210863/pexels-photo-4210863.jpeg",
			},
			Category: "Moda",
			Tags:     []string{"camiseta", "roupa", "casual"},
			Rating:   4.3,
			Stock:    45,
			New:      true,
		},
		{
			ID:               5,
			Name:             "Poltrona Decorativa Confort",
			Price:            799.90,
			OldPrice:         999.90,
			Description:      "Poltrona decorativa com design moderno e acabamento premium. Estrutura resistente em madeira maciça e estofado macio em tecido premium. Perfeita para complementar a decoração da sua sala com estilo e conforto.",
			ShortDescription: "Poltrona de design moderno com tecido premium e conforto excepcional.",
			Images: []string{
				"https://images.pexels.com/photos/1148955/pexels-photo-1148955.jpeg",
				"https://images.pexels.com/photos/1866149/pexels-photo-1866149.jpeg",
			},
			Category: "Casa & Decoração",
			Tags:     []string{"poltrona", "móveis", "decoração", "sala"},
			Rating:   4.6,
			Stock:    8,
			Featured: true,
			Sale:     true,
		},
		{
			ID:               6,
			Name:             "Fone de Ouvido Bluetooth",
			Price:            299.90,
			Description:      "Fone de ouvido sem fio com tecnologia Bluetooth 5.0, bateria de longa duração e qualidade de som excepcional. Inclui estojo de carregamento portátil e diferentes tamanhos de ponteiras para melhor ajuste.",
			ShortDescription: "Fone wireless com cancelamento de ruído e bateria de longa duração.",
			Images: []string{
				"https://images.pexels.com/photos/3394654/pexels-photo-3394654.jpeg",
				"https://images.pexels.com/photos/3394665/pexels-photo-3394665.jpeg",
			},
			Category: "Eletrônicos",
			Tags:     []string{"fone", "áudio", "música", "bluetooth"},
			Rating:   4.4,
			Stock:    18,
			New:      true,
		},
		{
			ID:               7,
			Name:             "Relógio Smartwatch",
			Price:            549.90,
			OldPrice:         699.90,
			Description:      "Smartwatch com múltiplas funcionalidades como monitoramento cardíaco, contagem de passos, notificações e mais de 20 modos esportivos. Resistente à água e com bateria que dura até 14 dias.",
			ShortDescription: "Relógio inteligente com monitor cardíaco e múltiplas funções esportivas.",
			Images: []string{
				"https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg",
				"https://images.pexels.com/photos/393047/pexels-photo-393047.jpeg",
			},
			Category: "Eletrônicos",
			Tags:     []string{"relógio", "smartwatch", "fitness"},
			Rating:   4.5,
			Stock:    15,
			Sale:     true,
		},
		{
			ID:               8,
			Name:             "Mochila Urbana",
			Price:            179.90,
			Description:      "Mochila com design urbano, compartimentos organizadores e porta notebook. Material resistente à água e alças acolchoadas para maior conforto durante o uso diário ou em viagens curtas.",
			ShortDescription: "Mochila resistente com compartimento para notebook e múltiplos bolsos.",
			Images: []string{
				"https://images.pexels.com/photos/1294731/pexels-photo-1294731.jpeg",
				"https://images.pexels.com/photos/2905238/pexels-photo-2905238.jpeg",
			},
			Category: "Moda",
			Tags:     []string{"mochila", "acessório", "viagem"},
			Rating:   4.2,
			Stock:    22,
			New:      true,
		},
	}
}
