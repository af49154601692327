package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/vfg2006/creator-finance-api/internal/config"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/pkg/log"
	"google.golang.org/api/option"
)

// ErrUnavailable indica que o integrador não foi configurado com uma chave
// de API. O recurso de insights é opcional; sem chave a API responde com
// indisponibilidade em vez de erro interno.
var ErrUnavailable = errors.New("integração com Gemini não configurada")

type Integrator interface {
	Available() bool
	GenerateInsights(ctx context.Context, dashboard *domain.DashboardResponse) (string, error)
	GenerateLogoPrompt(ctx context.Context, brandName, style string) (string, error)
	Close() error
}

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient cria o integrador. Com a chave vazia devolve um cliente
// desabilitado que responde ErrUnavailable em todas as operações.
func NewClient(ctx context.Context, cfg config.Gemini) (*Client, error) {
	if cfg.APIKey == "" {
		log.L.Info("gemini: API key ausente, insights por IA desabilitados")
		return &Client{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(cfg.Model),
	}, nil
}

func (c *Client) Available() bool {
	return c.model != nil
}

// GenerateInsights produz um texto curto de análise financeira a partir do
// snapshot calculado pelo motor de agregação
func (c *Client) GenerateInsights(ctx context.Context, dashboard *domain.DashboardResponse) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	prompt := buildInsightsPrompt(dashboard)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("erro na API do Gemini: %w", err)
	}

	return extractText(resp)
}

// GenerateLogoPrompt devolve uma descrição de logo para a marca do criador
func (c *Client) GenerateLogoPrompt(ctx context.Context, brandName, style string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	prompt := fmt.Sprintf(
		"Descreva em um parágrafo um logotipo para a marca %q no estilo %q. "+
			"A descrição deve servir como prompt para um gerador de imagens.",
		brandName, style,
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("erro na API do Gemini: %w", err)
	}

	return extractText(resp)
}

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func buildInsightsPrompt(dashboard *domain.DashboardResponse) string {
	var sb strings.Builder

	sb.WriteString("Você é um consultor financeiro para criadores de conteúdo digital. ")
	sb.WriteString("Analise os números abaixo e escreva até três insights práticos em português.\n\n")

	if dashboard.Summary != nil {
		fmt.Fprintf(&sb, "Receita total: %.2f\n", dashboard.Summary.Revenue)
		fmt.Fprintf(&sb, "Despesas totais: %.2f\n", dashboard.Summary.Expenses)
		fmt.Fprintf(&sb, "Lucro líquido: %.2f\n", dashboard.Summary.NetProfit)
		fmt.Fprintf(&sb, "Ganhos de afiliado: %.2f\n", dashboard.Summary.AffiliateEarnings)
	}

	if len(dashboard.RevenueTrend) > 0 {
		sb.WriteString("Receita por mês:\n")
		for _, point := range dashboard.RevenueTrend {
			fmt.Fprintf(&sb, "- %s: %.2f\n", point.Month, point.Revenue)
		}
	}

	if len(dashboard.ExpensesByCategory) > 0 {
		sb.WriteString("Despesas por categoria:\n")
		for category, total := range dashboard.ExpensesByCategory {
			fmt.Fprintf(&sb, "- %s: %.2f\n", category, total)
		}
	}

	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("resposta vazia da API do Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}
