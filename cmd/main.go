package main

import (
	"net/http"
	"os"
	"time"

	"github.com/decorart/api-financeiro/internal/auditoria"
	"github.com/decorart/api-financeiro/internal/auth"
	"github.com/decorart/api-financeiro/internal/cache"
	"github.com/decorart/api-financeiro/internal/comissao"
	"github.com/decorart/api-financeiro/internal/conciliacao"
	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/lancamento"
	"github.com/decorart/api-financeiro/internal/margem"
	"github.com/decorart/api-financeiro/internal/movimentobancario"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/ordemproducao"
	"github.com/decorart/api-financeiro/internal/parcela"
	"github.com/decorart/api-financeiro/internal/usuario"
	"github.com/decorart/api-financeiro/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Warn("arquivo .env não encontrado, usando variáveis do ambiente")
	}

	database, err := db.Connect()
	if err != nil {
		log.WithError(err).Fatal("erro ao conectar no banco")
	}

	// Migrações por pacote, na ordem das dependências entre tabelas.
	for _, migrate := range []func(*gorm.DB) error{
		usuario.Migrate,
		orcamento.Migrate,
		contareceber.Migrate,
		parcela.Migrate,
		contapagar.Migrate,
		movimentobancario.Migrate,
		lancamento.Migrate,
		comissao.Migrate,
		ordemproducao.Migrate,
	} {
		if err := migrate(database); err != nil {
			log.WithError(err).Fatal("erro ao migrar o banco")
		}
	}

	// Repositórios
	usuarioRepo := usuario.NewRepository(database)
	orcamentoRepo := orcamento.NewRepository(database)
	movimentoRepo := movimentobancario.NewRepository(database)
	parcelaRepo := parcela.NewRepository(database)
	contaPagarRepo := contapagar.NewRepository(database)
	contaReceberRepo := contareceber.NewRepository(database)
	lancamentoRepo := lancamento.NewRepository(database)
	comissaoRepo := comissao.NewRepository(database)
	ordemRepo := ordemproducao.NewRepository(database)

	// Serviços e handlers
	usuarioHandler := usuario.NewHandler(usuarioRepo)
	orcamentoHandler := orcamento.NewHandler(orcamentoRepo)
	movimentoHandler := movimentobancario.NewHandler(movimentoRepo)
	contaReceberHandler := contareceber.NewHandler(contaReceberRepo)
	lancamentoHandler := lancamento.NewHandler(lancamentoRepo)
	comissaoHandler := comissao.NewHandler(comissaoRepo)
	ordemHandler := ordemproducao.NewHandler(ordemRepo)

	servicoLote := conciliacao.NewServicoLote(conciliacao.NewStore(database), log)
	conciliacaoHandler := conciliacao.NewHandler(movimentoRepo, parcelaRepo, contaPagarRepo, servicoLote)

	auditor := auditoria.NewAuditor(auditoria.NewFonte(database), log)
	relatorioCache := cache.New[*auditoria.RelatorioAuditoria](5 * time.Minute)
	auditoriaHandler := auditoria.NewHandler(auditor, relatorioCache)

	reporter := margem.NewReporter(margem.NewFonte(database), log)
	margemHandler := margem.NewHandler(reporter)

	// Conciliação aplicada invalida o relatório de auditoria em cache.
	conciliacaoHandler.AoAplicar = auditoriaHandler.Invalidar

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de orçamentos
	api.HandleFunc("/orcamentos", orcamentoHandler.List).Methods("GET")
	api.HandleFunc("/orcamentos/{id}", orcamentoHandler.Get).Methods("GET")
	api.HandleFunc("/orcamentos/{id}/resumo-financeiro", orcamentoHandler.ResumoFinanceiro).Methods("GET")
	api.HandleFunc("/orcamentos/{id}/ordens-producao", ordemHandler.ListByOrcamento).Methods("GET")

	// Rotas de contas a receber e lançamentos
	api.HandleFunc("/contas-receber", contaReceberHandler.List).Methods("GET")
	api.HandleFunc("/contas-receber/{id}", contaReceberHandler.Get).Methods("GET")
	api.HandleFunc("/contas-receber/{id}/recalcular", contaReceberHandler.Recalcular).Methods("POST")
	api.HandleFunc("/lancamentos", lancamentoHandler.ListByVinculo).Methods("GET")

	// Rotas de comissões e ordens de produção
	api.HandleFunc("/comissoes", comissaoHandler.List).Methods("GET")
	api.HandleFunc("/comissoes/{id}/pagar", comissaoHandler.MarcarPaga).Methods("PATCH")
	api.HandleFunc("/ordens-producao", ordemHandler.List).Methods("GET")

	// Rotas de movimentos bancários
	api.HandleFunc("/movimentos/nao-conciliados", movimentoHandler.ListNaoConciliados).Methods("GET")
	api.HandleFunc("/movimentos/{id}/ignorado", movimentoHandler.SetIgnorado).Methods("PATCH")

	// Rotas de conciliação
	api.HandleFunc("/conciliacao/candidatos", conciliacaoHandler.Candidatos).Methods("GET")
	api.HandleFunc("/conciliacao/lote", conciliacaoHandler.AplicarLote).Methods("POST")
	api.HandleFunc("/manutencao/vencidas", conciliacaoHandler.MarcarVencidas).Methods("POST")

	// Relatórios
	api.HandleFunc("/auditoria/relatorio", auditoriaHandler.Relatorio).Methods("GET")
	api.HandleFunc("/relatorios/margem", margemHandler.Relatorio).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{os.Getenv("CORS_ORIGIN")},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	log.WithField("porta", porta).Info("servidor iniciado")
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
